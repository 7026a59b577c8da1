// Package view defines the screens of the app as immutable descriptors and
// maps the top descriptor to what the terminal should show.
package view

import (
	"github.com/jeanpaul/wortschatz/internal/ledger"
	"github.com/jeanpaul/wortschatz/internal/lesson"
)

// Name identifies a screen. It is also the label of the platform history
// entry recorded when the screen is pushed.
type Name string

const (
	NameHome            Name = "HOME"
	NameSettings        Name = "SETTINGS"
	NameNouns           Name = "NOUNS"
	NameNounExamples    Name = "NOUN_EXAMPLES"
	NameVerbsInput      Name = "VERBS_INPUT"
	NameVerbsMenu       Name = "VERBS_MENU"
	NameVerbDetail      Name = "VERBS_DETAIL"
	NameVerbMeanings    Name = "VERBS_MEANINGS"
	NameGrammarLevels   Name = "GRAMMAR_LEVELS"
	NameGrammarTopics   Name = "GRAMMAR_TOPICS"
	NameGrammarDetail   Name = "GRAMMAR_DETAIL"
	NameToolsCategories Name = "TOOLS_CATEGORIES"
	NameToolsList       Name = "TOOLS_LIST"
	NameToolDetail      Name = "TOOL_DETAIL"
	NameChat            Name = "CHAT"
	NameConvLevels      Name = "CONV_LEVELS"
	NameConvHistory     Name = "CONV_HISTORY"
	NameConvSetup       Name = "CONV_SETUP"
	NameConvResult      Name = "CONV_RESULT"
)

// Descriptor is one frame of the navigation stack. The set of variants is
// closed; every variant is a value type and is never modified after it is
// pushed.
type Descriptor interface {
	Name() Name
	descriptor()
}

type Home struct{}

type Settings struct{}

type Nouns struct{}

type NounExamples struct {
	Noun    string
	Article string
}

type VerbsInput struct{}

type VerbsMenu struct{ Verb string }

type VerbDetail struct {
	Verb        string
	Category    string
	Subcategory string
}

type VerbMeanings struct{ Verb string }

type GrammarLevels struct{}

type GrammarTopics struct{ Level string }

type GrammarDetail struct {
	Level string
	Topic lesson.GrammarTopic
}

type ToolsCategories struct{}

type ToolsList struct {
	CategoryID   string
	CategoryName string
}

type ToolDetail struct {
	Tool         lesson.ToolItem
	CategoryName string
}

// Chat opens the tutor with a German sentence and its translation as context.
type Chat struct {
	ContextDe string
	ContextTr string
}

type ConvLevels struct{}

type ConvHistory struct{ Austrian bool }

type ConvSetup struct {
	Level    string
	Austrian bool
}

type ConvResult struct {
	Level    string
	Topic    string
	Length   lesson.ConvLength
	Austrian bool
}

func (Home) Name() Name            { return NameHome }
func (Settings) Name() Name        { return NameSettings }
func (Nouns) Name() Name           { return NameNouns }
func (NounExamples) Name() Name    { return NameNounExamples }
func (VerbsInput) Name() Name      { return NameVerbsInput }
func (VerbsMenu) Name() Name       { return NameVerbsMenu }
func (VerbDetail) Name() Name      { return NameVerbDetail }
func (VerbMeanings) Name() Name    { return NameVerbMeanings }
func (GrammarLevels) Name() Name   { return NameGrammarLevels }
func (GrammarTopics) Name() Name   { return NameGrammarTopics }
func (GrammarDetail) Name() Name   { return NameGrammarDetail }
func (ToolsCategories) Name() Name { return NameToolsCategories }
func (ToolsList) Name() Name       { return NameToolsList }
func (ToolDetail) Name() Name      { return NameToolDetail }
func (Chat) Name() Name            { return NameChat }
func (ConvLevels) Name() Name      { return NameConvLevels }
func (ConvHistory) Name() Name     { return NameConvHistory }
func (ConvSetup) Name() Name       { return NameConvSetup }
func (ConvResult) Name() Name      { return NameConvResult }

func (Home) descriptor()            {}
func (Settings) descriptor()        {}
func (Nouns) descriptor()           {}
func (NounExamples) descriptor()    {}
func (VerbsInput) descriptor()      {}
func (VerbsMenu) descriptor()       {}
func (VerbDetail) descriptor()      {}
func (VerbMeanings) descriptor()    {}
func (GrammarLevels) descriptor()   {}
func (GrammarTopics) descriptor()   {}
func (GrammarDetail) descriptor()   {}
func (ToolsCategories) descriptor() {}
func (ToolsList) descriptor()       {}
func (ToolDetail) descriptor()      {}
func (Chat) descriptor()            {}
func (ConvLevels) descriptor()      {}
func (ConvHistory) descriptor()     {}
func (ConvSetup) descriptor()       {}
func (ConvResult) descriptor()      {}

// Reopen rebuilds the conversation screen a ledger record came from.
func Reopen(r ledger.Record) ConvResult {
	return ConvResult{
		Level:    r.Level,
		Topic:    r.Topic,
		Length:   lesson.ConvLength(r.Length),
		Austrian: r.Austrian,
	}
}
