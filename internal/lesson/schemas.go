package lesson

import "google.golang.org/genai"

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func object(required []string, props map[string]*genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func arrayOf(item *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: item}
}

var exampleSchema = object([]string{"de", "tr"}, map[string]*genai.Schema{
	"de": str(),
	"tr": str(),
})

var nounSchema = object([]string{"article", "word", "translation"}, map[string]*genai.Schema{
	"article":     {Type: genai.TypeString, Enum: []string{"der", "die", "das"}},
	"word":        str(),
	"plural":      str(),
	"translation": str(),
})

var verbSchema = object([]string{"conjugations"}, map[string]*genai.Schema{
	"conjugations": arrayOf(object([]string{"pronoun", "conjugation", "exampleDe", "exampleTr"}, map[string]*genai.Schema{
		"pronoun":     str(),
		"conjugation": str(),
		"exampleDe":   str(),
		"exampleTr":   str(),
	})),
})

var meaningsSchema = object([]string{"meanings"}, map[string]*genai.Schema{
	"meanings": arrayOf(object([]string{"meaning", "exampleDe", "exampleTr"}, map[string]*genai.Schema{
		"meaning":   str(),
		"exampleDe": str(),
		"exampleTr": str(),
	})),
})

var nounCasesSchema = object([]string{"cases"}, map[string]*genai.Schema{
	"cases": arrayOf(object([]string{"caseName", "sentenceDe", "sentenceTr"}, map[string]*genai.Schema{
		"caseName":   str(),
		"sentenceDe": str(),
		"sentenceTr": str(),
	})),
})

var grammarTopicsSchema = object([]string{"topics"}, map[string]*genai.Schema{
	"topics": arrayOf(object([]string{"titleTr", "titleDe", "description"}, map[string]*genai.Schema{
		"id":          str(),
		"titleTr":     str(),
		"titleDe":     str(),
		"description": str(),
	})),
})

var grammarExplanationSchema = object([]string{"title", "explanation", "examples"}, map[string]*genai.Schema{
	"title":       str(),
	"explanation": str(),
	"examples":    arrayOf(exampleSchema),
})

var toolsListSchema = object([]string{"tools"}, map[string]*genai.Schema{
	"tools": arrayOf(object([]string{"word", "translation", "level", "description"}, map[string]*genai.Schema{
		"word":        str(),
		"translation": str(),
		"level":       str(),
		"description": str(),
	})),
})

var toolDetailSchema = object([]string{"word", "level", "meaningTr", "usageTr", "examples"}, map[string]*genai.Schema{
	"word":      str(),
	"level":     str(),
	"meaningTr": str(),
	"usageTr":   str(),
	"examples":  arrayOf(exampleSchema),
})

var conversationSchema = object([]string{"conversation"}, map[string]*genai.Schema{
	"conversation": arrayOf(object([]string{"speaker", "textDe", "textTr"}, map[string]*genai.Schema{
		"speaker": {Type: genai.TypeString, Enum: []string{"A", "B"}},
		"textDe":  str(),
		"ttsText": str(),
		"textTr":  str(),
	})),
})

var keywordsSchema = object([]string{"keywords"}, map[string]*genai.Schema{
	"keywords": arrayOf(object([]string{"word", "meaning"}, map[string]*genai.Schema{
		"word":    str(),
		"meaning": str(),
	})),
})
