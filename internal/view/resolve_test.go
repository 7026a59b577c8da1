package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeanpaul/wortschatz/internal/i18n"
	"github.com/jeanpaul/wortschatz/internal/ledger"
	"github.com/jeanpaul/wortschatz/internal/lesson"
)

func TestResolve_Titles(t *testing.T) {
	s := i18n.For("en")
	tests := []struct {
		d    Descriptor
		want string
	}{
		{Home{}, s.AppName},
		{Settings{}, s.Settings},
		{Nouns{}, s.Nouns},
		{NounExamples{Noun: "Tisch", Article: "der"}, s.NounCases},
		{VerbsMenu{Verb: "gehen"}, "gehen"},
		{VerbDetail{Verb: "gehen", Category: lesson.CategoryTenses, Subcategory: "Perfekt"}, "Perfekt"},
		{GrammarTopics{Level: "B1"}, s.TopicsFor + " B1"},
		{GrammarDetail{Level: "A1", Topic: lesson.GrammarTopic{ID: "t1", TitleTr: "Articles"}}, "Articles"},
		{ToolsList{CategoryID: "prepositions", CategoryName: "Prepositions"}, "Prepositions"},
		{ToolDetail{Tool: lesson.ToolItem{Word: "trotz"}}, "trotz"},
		{ConvSetup{Level: "A2"}, s.ConvTitle + " (A2)"},
		{ConvResult{Topic: "Essen"}, "Essen"},
		{ConvHistory{Austrian: true}, s.ConvHistory},
	}
	for _, tt := range tests {
		t.Run(string(tt.d.Name()), func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.d, s).Title)
		})
	}
}

func TestResolve_ChatLike(t *testing.T) {
	s := i18n.For("en")
	assert.True(t, Resolve(Chat{ContextDe: "Hallo"}, s).ChatLike)
	assert.True(t, Resolve(ConvResult{Topic: "Essen"}, s).ChatLike)
	assert.False(t, Resolve(Nouns{}, s).ChatLike)
}

func TestResolve_FollowsLocale(t *testing.T) {
	assert.Equal(t, "Einstellungen", Resolve(Settings{}, i18n.For("de")).Title)
	assert.Equal(t, "Settings", Resolve(Settings{}, i18n.For("en")).Title)
}

func TestReopen(t *testing.T) {
	got := Reopen(ledger.Record{ID: "conv_B1_Reisen_long_en_true", Topic: "Reisen", Level: "B1", Length: "long", Austrian: true})
	assert.Equal(t, ConvResult{Level: "B1", Topic: "Reisen", Length: lesson.Long, Austrian: true}, got)
}
