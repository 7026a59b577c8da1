// Package i18n holds the supported interface languages, their reading
// direction and the translated interface strings.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Fallback is used when nothing better can be detected.
const Fallback = "en"

// Dir is the reading direction of a locale.
type Dir string

const (
	LTR Dir = "ltr"
	RTL Dir = "rtl"
)

// Locale is one selectable interface language.
type Locale struct {
	Code string
	Name string
	Dir  Dir
}

// Locales lists the supported interface languages in display order.
var Locales = []Locale{
	{"ar", "العربية", RTL},
	{"en", "English", LTR},
	{"de", "Deutsch", LTR},
	{"uk", "Українська", LTR},
	{"es", "Español", LTR},
	{"tr", "Türkçe", LTR},
	{"ru", "Русский", LTR},
	{"hu", "Magyar", LTR},
	{"fa", "فارسی", RTL},
	{"sr", "Српски", LTR},
	{"fr", "Français", LTR},
	{"it", "Italiano", LTR},
	{"ja", "日本語", LTR},
	{"zh-CN", "简体中文", LTR},
	{"ur", "اردو", RTL},
	{"ro", "Română", LTR},
	{"hi", "हिन्दी", LTR},
}

// Lookup returns the locale registered under code.
func Lookup(code string) (Locale, bool) {
	for _, l := range Locales {
		if l.Code == code {
			return l, true
		}
	}
	return Locale{}, false
}

// Supported reports whether code names a selectable locale.
func Supported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Direction returns the reading direction for code. Unknown codes read
// left to right.
func Direction(code string) Dir {
	if l, ok := Lookup(code); ok {
		return l.Dir
	}
	return LTR
}

// EnglishName is the locale's name in English, used in prompts that ask the
// model to answer in the learner's language.
func EnglishName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return "English"
	}
	base, _ := tag.Base()
	switch base.String() {
	case "ar":
		return "Arabic"
	case "de":
		return "German"
	case "uk":
		return "Ukrainian"
	case "es":
		return "Spanish"
	case "tr":
		return "Turkish"
	case "ru":
		return "Russian"
	case "hu":
		return "Hungarian"
	case "fa":
		return "Persian"
	case "sr":
		return "Serbian"
	case "fr":
		return "French"
	case "it":
		return "Italian"
	case "ja":
		return "Japanese"
	case "zh":
		return "Simplified Chinese"
	case "ur":
		return "Urdu"
	case "ro":
		return "Romanian"
	case "hi":
		return "Hindi"
	default:
		return "English"
	}
}

// Detect picks a locale from the POSIX locale environment (LC_ALL,
// LC_MESSAGES, LANG in that order). A full match such as zh-CN wins over the
// base language; any Chinese variant maps to zh-CN; otherwise the base
// language is tried and Fallback returned when nothing matches.
func Detect(getenv func(string) string) string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		raw := getenv(name)
		if raw == "" || raw == "C" || raw == "POSIX" {
			continue
		}
		return match(raw)
	}
	return Fallback
}

func match(raw string) string {
	// de_AT.UTF-8@euro -> de-AT
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ReplaceAll(raw, "_", "-")

	tag, err := language.Parse(raw)
	if err != nil {
		return Fallback
	}
	if Supported(tag.String()) {
		return tag.String()
	}
	base, _ := tag.Base()
	if base.String() == "zh" {
		return "zh-CN"
	}
	if Supported(base.String()) {
		return base.String()
	}
	return Fallback
}
