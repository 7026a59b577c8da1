package lesson

// Article is a German definite article.
type Article string

const (
	Der Article = "der"
	Die Article = "die"
	Das Article = "das"
)

// Noun is a looked-up noun with its article.
type Noun struct {
	Word        string  `json:"word"`
	Article     Article `json:"article"`
	Plural      string  `json:"plural,omitempty"`
	Translation string  `json:"translation"`
}

// NounCase is one example sentence for a grammatical case.
type NounCase struct {
	CaseName   string `json:"caseName"`
	SentenceDe string `json:"sentenceDe"`
	SentenceTr string `json:"sentenceTr"`
}

type Conjugation struct {
	Pronoun     string `json:"pronoun"`
	Conjugation string `json:"conjugation"`
	ExampleDe   string `json:"exampleDe"`
	ExampleTr   string `json:"exampleTr"`
}

// VerbResult is the conjugation table of one verb for one tense or form.
type VerbResult struct {
	TenseName    string        `json:"tenseName"`
	Conjugations []Conjugation `json:"conjugations"`
}

type Meaning struct {
	Meaning   string `json:"meaning"`
	ExampleDe string `json:"exampleDe"`
	ExampleTr string `json:"exampleTr"`
}

type GrammarTopic struct {
	ID          string `json:"id"`
	TitleTr     string `json:"titleTr"`
	TitleDe     string `json:"titleDe"`
	Description string `json:"description"`
}

// Example pairs a German sentence with its translation.
type Example struct {
	De string `json:"de"`
	Tr string `json:"tr"`
}

type GrammarExplanation struct {
	Title       string    `json:"title"`
	Explanation string    `json:"explanation"` // markdown
	Examples    []Example `json:"examples"`
}

// ToolItem is a function word (preposition, connector, ...) in a category.
type ToolItem struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

type ToolDetail struct {
	Word      string    `json:"word"`
	Level     string    `json:"level"`
	MeaningTr string    `json:"meaningTr"`
	UsageTr   string    `json:"usageTr"` // markdown
	Examples  []Example `json:"examples"`
}

// ConvLength is the requested size of a generated conversation.
type ConvLength string

const (
	Short  ConvLength = "short"
	Medium ConvLength = "medium"
	Long   ConvLength = "long"
)

// Turn is one line of a generated conversation. Speaker A is the learner.
type Turn struct {
	Speaker string `json:"speaker"`
	TextDe  string `json:"textDe"`
	// TTSText is a standard German rendering of dialect text, used for audio.
	TTSText string `json:"ttsText,omitempty"`
	TextTr  string `json:"textTr"`
}

// SpeechText is what should be read aloud for the turn.
func (t Turn) SpeechText() string {
	if t.TTSText != "" {
		return t.TTSText
	}
	return t.TextDe
}

type Keyword struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// ChatMessage is one entry of a tutor chat history.
type ChatMessage struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// Verb conjugation categories.
const (
	CategoryTenses  = "TENSES"
	CategoryForms   = "FORMS"
	CategoryPassive = "PASSIVE"
)

// Levels are the CEFR levels offered for grammar and conversations.
var Levels = []string{"A1", "A2", "B1", "B2", "C1"}

// ToolCategories are the ids of the tool word categories, in display order.
// Their display names come from the interface strings.
var ToolCategories = []string{"prepositions", "conjunctions", "adverbs", "connectors", "particles", "pronouns"}
