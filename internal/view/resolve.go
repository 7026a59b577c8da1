package view

import (
	"fmt"

	"github.com/jeanpaul/wortschatz/internal/i18n"
)

// Screen is what the controller needs to lay out the top frame.
type Screen struct {
	Name  Name
	Title string
	// ChatLike screens own the whole body and keep their input focused.
	ChatLike bool
	// Desc carries the parameters the renderer needs.
	Desc Descriptor
}

// Resolve maps d to its screen using the strings of the active locale. It
// has no side effects.
func Resolve(d Descriptor, s i18n.Strings) Screen {
	sc := Screen{Name: d.Name(), Desc: d, Title: title(d, s)}
	switch d.(type) {
	case Chat, ConvResult:
		sc.ChatLike = true
	}
	return sc
}

func title(d Descriptor, s i18n.Strings) string {
	switch v := d.(type) {
	case Home:
		return s.AppName
	case Settings:
		return s.Settings
	case Nouns:
		return s.Nouns
	case NounExamples:
		return s.NounCases
	case VerbsInput:
		return s.Verbs
	case VerbsMenu:
		return v.Verb
	case VerbDetail:
		return v.Subcategory
	case VerbMeanings:
		return s.MeaningsTitle
	case GrammarLevels:
		return s.SelectLevel
	case GrammarTopics:
		return fmt.Sprintf("%s %s", s.TopicsFor, v.Level)
	case GrammarDetail:
		return v.Topic.TitleTr
	case ToolsCategories:
		return s.Tools
	case ToolsList:
		return v.CategoryName
	case ToolDetail:
		return v.Tool.Word
	case Chat:
		return s.ChatTitle
	case ConvLevels:
		return s.ConvTitle
	case ConvSetup:
		return fmt.Sprintf("%s (%s)", s.ConvTitle, v.Level)
	case ConvResult:
		return v.Topic
	case ConvHistory:
		return s.ConvHistory
	default:
		return s.AppName
	}
}
