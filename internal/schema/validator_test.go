package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

var nounSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"article":     {Type: genai.TypeString, Enum: []string{"der", "die", "das"}},
		"word":        {Type: genai.TypeString},
		"plural":      {Type: genai.TypeString},
		"translation": {Type: genai.TypeString},
	},
	Required: []string{"article", "word", "translation"},
}

var listSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"keywords": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{"word": {Type: genai.TypeString}},
				Required:   []string{"word"},
			},
		},
	},
	Required: []string{"keywords"},
}

func TestValidate(t *testing.T) {
	v := NewValidator()
	tests := []struct {
		name    string
		schema  *genai.Schema
		doc     string
		wantErr bool
	}{
		{"valid noun", nounSchema, `{"article":"der","word":"Tisch","translation":"table"}`, false},
		{"bad article", nounSchema, `{"article":"dem","word":"Tisch","translation":"table"}`, true},
		{"missing field", nounSchema, `{"article":"der","word":"Tisch"}`, true},
		{"valid list", listSchema, `{"keywords":[{"word":"Brot"}]}`, false},
		{"item missing field", listSchema, `{"keywords":[{"meaning":"bread"}]}`, true},
		{"wrong type", listSchema, `{"keywords":"Brot"}`, true},
		{"nil schema", nil, `[1,2,3]`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.schema, json.RawMessage(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_CachesCompiledSchema(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.Validate(nounSchema, json.RawMessage(`{"article":"das","word":"Haus","translation":"house"}`)))
	_, ok := v.cache.Load(nounSchema)
	assert.True(t, ok)
}

func TestToJSONSchema(t *testing.T) {
	got := ToJSONSchema(nounSchema)
	assert.Equal(t, "object", got["type"])
	props := got["properties"].(map[string]any)
	article := props["article"].(map[string]any)
	assert.Equal(t, []any{"der", "die", "das"}, article["enum"])
	assert.Equal(t, []any{"article", "word", "translation"}, got["required"])
}

func TestDumpErrors(t *testing.T) {
	assert.Equal(t, "a", dumpErrors([]string{"a"}))
	assert.Equal(t, "a\n- b\n- c\n... and 2 more", dumpErrors([]string{"a", "b", "c", "d", "e"}))
}
