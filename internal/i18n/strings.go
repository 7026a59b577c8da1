package i18n

import (
	"embed"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Strings is the interface text for one locale.
type Strings struct {
	AppName     string `yaml:"appName"`
	Tagline     string `yaml:"tagline"`
	Verbs       string `yaml:"verbs"`
	VerbsDesc   string `yaml:"verbsDesc"`
	Nouns       string `yaml:"nouns"`
	NounsDesc   string `yaml:"nounsDesc"`
	Grammar     string `yaml:"grammar"`
	GrammarDesc string `yaml:"grammarDesc"`
	Tools       string `yaml:"tools"`
	ToolsDesc   string `yaml:"toolsDesc"`
	Settings    string `yaml:"settings"`
	Back        string `yaml:"back"`
	Loading     string `yaml:"loading"`
	MissingKey  string `yaml:"missingKey"`
	LoadFailed  string `yaml:"loadFailed"`
	Disclaimer  string `yaml:"disclaimer"`

	EnterNoun     string `yaml:"enterNoun"`
	CheckNoun     string `yaml:"checkNoun"`
	NounResult    string `yaml:"nounResult"`
	NounPlural    string `yaml:"nounPlural"`
	NounHistory   string `yaml:"nounHistory"`
	NounCases     string `yaml:"nounCasesTitle"`
	Article       string `yaml:"article"`
	Word          string `yaml:"word"`
	Translation   string `yaml:"translation"`
	Examples      string `yaml:"examples"`
	EnterVerb     string `yaml:"enterVerb"`
	Continue      string `yaml:"continue"`
	Tenses        string `yaml:"tenses"`
	Forms         string `yaml:"forms"`
	Passive       string `yaml:"passive"`
	ShowMeanings  string `yaml:"showMeanings"`
	MeaningsTitle string `yaml:"meaningsTitle"`
	SelectLevel   string `yaml:"selectLevel"`
	TopicsFor     string `yaml:"topicsFor"`
	SelectTool    string `yaml:"selectTool"`
	AskAI         string `yaml:"askAi"`
	TestMe        string `yaml:"testMe"`

	ChatTitle       string `yaml:"chatTitle"`
	ChatPlaceholder string `yaml:"chatPlaceholder"`
	ChatFallback    string `yaml:"chatFallback"`

	APIKeyLabel       string `yaml:"apiKeyLabel"`
	APIKeyPlaceholder string `yaml:"apiKeyPlaceholder"`
	Save              string `yaml:"save"`
	Language          string `yaml:"language"`
	SelectLanguage    string `yaml:"selectLanguage"`
	SmartStorage      string `yaml:"smartStorage"`
	SmartStorageDesc  string `yaml:"smartStorageDesc"`
	AudioSettings     string `yaml:"audioSettings"`
	AudioPreload      string `yaml:"audioPreload"`
	AudioOnDemand     string `yaml:"audioOnDemand"`
	AudioDisabled     string `yaml:"audioDisabled"`
	SRS               string `yaml:"srsSystem"`
	SRSDesc           string `yaml:"srsDesc"`

	ConvTitle          string `yaml:"convTitle"`
	ConvDesc           string `yaml:"convDesc"`
	ConvTopicLabel     string `yaml:"convTopicLabel"`
	ConvTopicHint      string `yaml:"convTopicPlaceholder"`
	ConvLengthLabel    string `yaml:"convLengthLabel"`
	ConvShort          string `yaml:"convShort"`
	ConvMedium         string `yaml:"convMedium"`
	ConvLong           string `yaml:"convLong"`
	ConvShowTrans      string `yaml:"convShowTrans"`
	ConvHideTrans      string `yaml:"convHideTrans"`
	ConvSlowSpeed      string `yaml:"convSlowSpeed"`
	ConvNormalSpeed    string `yaml:"convNormalSpeed"`
	ConvKeywords       string `yaml:"convExtractKeywords"`
	ConvKeywordsTitle  string `yaml:"convKeywordsTitle"`
	ConvAddMoreHint    string `yaml:"convAddMorePlaceholder"`
	ConvSuggested      string `yaml:"convSuggestedTopics"`
	ConvHistory        string `yaml:"convHistory"`
	ConvNoHistory      string `yaml:"convNoHistory"`
	ConvAustrianLabel  string `yaml:"convAustrianLabel"`
	ConvAustrianNotice string `yaml:"convAustrianDisclaimer"`

	Categories struct {
		Tenses  []string `yaml:"tenses"`
		Forms   []string `yaml:"forms"`
		Passive []string `yaml:"passive"`
	} `yaml:"categories"`
	ToolCategories map[string]string `yaml:"toolCategories"`
	ConvTopics     []string          `yaml:"convTopicsList"`
}

var (
	stringsMu    sync.Mutex
	stringsCache = map[string]Strings{}
)

// For returns the strings for code. Keys a locale does not translate keep
// their English text, and unknown codes get English.
func For(code string) Strings {
	stringsMu.Lock()
	defer stringsMu.Unlock()
	if s, ok := stringsCache[code]; ok {
		return s
	}

	var s Strings
	// en.yaml is embedded and always decodes.
	_ = decodeInto(Fallback, &s)
	if code != Fallback {
		_ = decodeInto(code, &s)
	}
	stringsCache[code] = s
	return s
}

// decodeInto overlays the keys present in the locale file onto s.
func decodeInto(code string, s *Strings) error {
	data, err := localeFS.ReadFile("locales/" + code + ".yaml")
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, s)
}

// Translated reports whether code has its own string table.
func Translated(code string) bool {
	_, err := localeFS.ReadFile("locales/" + code + ".yaml")
	return err == nil
}
