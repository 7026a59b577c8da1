package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"full match", map[string]string{"LANG": "zh_CN.UTF-8"}, "zh-CN"},
		{"chinese variant maps to simplified", map[string]string{"LANG": "zh_TW.UTF-8"}, "zh-CN"},
		{"base language", map[string]string{"LANG": "de_AT.UTF-8"}, "de"},
		{"modifier stripped", map[string]string{"LANG": "fr_FR@euro"}, "fr"},
		{"LC_ALL wins", map[string]string{"LC_ALL": "ar_EG.UTF-8", "LANG": "en_US.UTF-8"}, "ar"},
		{"C locale skipped", map[string]string{"LC_ALL": "C", "LANG": "tr_TR.UTF-8"}, "tr"},
		{"unsupported", map[string]string{"LANG": "pt_BR.UTF-8"}, "en"},
		{"nothing set", map[string]string{}, "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(env(tt.vars)))
		})
	}
}

func TestDirection(t *testing.T) {
	for _, code := range []string{"ar", "fa", "ur"} {
		assert.Equal(t, RTL, Direction(code), code)
	}
	for _, code := range []string{"en", "de", "zh-CN", "hi"} {
		assert.Equal(t, LTR, Direction(code), code)
	}
	assert.Equal(t, LTR, Direction("xx"))
}

func TestLocalesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, l := range Locales {
		require.False(t, seen[l.Code], "duplicate %s", l.Code)
		seen[l.Code] = true
	}
	assert.Len(t, Locales, 17)
}

func TestFor_FallsBackToEnglish(t *testing.T) {
	en := For("en")
	require.NotEmpty(t, en.AppName)
	require.NotEmpty(t, en.Categories.Tenses)

	de := For("de")
	assert.Equal(t, "Einstellungen", de.Settings)
	// de.yaml keeps the German category labels from en.yaml.
	assert.Equal(t, en.Categories.Tenses, de.Categories.Tenses)

	ja := For("ja")
	assert.False(t, Translated("ja"))
	assert.Equal(t, en.Settings, ja.Settings)
}

func TestFor_EveryTranslationDefinesToolCategories(t *testing.T) {
	en := For("en")
	for _, code := range []string{"de", "ar"} {
		s := For(code)
		for id := range en.ToolCategories {
			assert.NotEmpty(t, s.ToolCategories[id], "%s missing tool category %s", code, id)
		}
	}
}

func TestEnglishName(t *testing.T) {
	assert.Equal(t, "Arabic", EnglishName("ar"))
	assert.Equal(t, "Simplified Chinese", EnglishName("zh-CN"))
	assert.Equal(t, "English", EnglishName(""))
}
