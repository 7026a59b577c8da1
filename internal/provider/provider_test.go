package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func geminiServer(t *testing.T, reply string, seen func(r *http.Request, body map[string]any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if seen != nil {
			seen(r, body)
		}
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": reply}},
				},
				"finishReason": "STOP",
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGemini_Generate(t *testing.T) {
	var gotKey string
	var gotBody map[string]any
	srv := geminiServer(t, `{"word":"Tisch","article":"der","translation":"table"}`, func(r *http.Request, body map[string]any) {
		gotKey = r.Header.Get("x-goog-api-key")
		gotBody = body
	})

	g := NewGemini(func() string { return "test-key" }, GeminiOptions{BaseURL: srv.URL})
	out, err := g.Generate(context.Background(), Request{
		Prompt:      "Analyse the noun Tisch",
		Schema:      &genai.Schema{Type: genai.TypeObject},
		Temperature: 0.1,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"word":"Tisch","article":"der","translation":"table"}`, string(out))
	assert.Equal(t, "test-key", gotKey)
	require.NotNil(t, gotBody["generationConfig"])
}

func TestGemini_GenerateRejectsNonJSON(t *testing.T) {
	srv := geminiServer(t, "Sorry, I cannot help with that.", nil)
	g := NewGemini(func() string { return "k" }, GeminiOptions{BaseURL: srv.URL})

	_, err := g.Generate(context.Background(), Request{Prompt: "x"})
	assert.Error(t, err)
}

func TestGemini_MissingKey(t *testing.T) {
	g := NewGemini(func() string { return "" }, GeminiOptions{})
	_, err := g.Generate(context.Background(), Request{Prompt: "x"})
	assert.ErrorIs(t, err, ErrNoAPIKey)
	_, err = g.Chat(context.Background(), ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGemini_Chat(t *testing.T) {
	var contents []any
	srv := geminiServer(t, "Gut gemacht!", func(_ *http.Request, body map[string]any) {
		contents, _ = body["contents"].([]any)
	})
	g := NewGemini(func() string { return "k" }, GeminiOptions{BaseURL: srv.URL})

	reply, err := g.Chat(context.Background(), ChatRequest{
		System:  "You are a tutor.",
		History: []Message{{Role: RoleUser, Text: "Hallo"}, {Role: RoleModel, Text: "Hallo!"}},
		Message: "Ist das richtig?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Gut gemacht!", reply)
	require.Len(t, contents, 3)

	var roles []string
	for _, c := range contents {
		m, _ := c.(map[string]any)
		role, _ := m["role"].(string)
		roles = append(roles, role)
	}
	assert.Equal(t, []string{"user", "model", "user"}, roles)
}

func TestStripFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFence(`{"a":1}`))
}

func TestRetry_RetriesTransientErrors(t *testing.T) {
	var calls int32
	f := &Fake{GenerateFunc: func(context.Context, Request) (json.RawMessage, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return nil, errors.New("Error 503, Message: overloaded, Status: UNAVAILABLE")
		}
		return json.RawMessage(`{"ok":true}`), nil
	}}
	r := WithRetry(f, 3)
	r.baseDelay = time.Millisecond

	out, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(out))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetry_DoesNotRetryPermanentErrors(t *testing.T) {
	var calls int32
	f := &Fake{GenerateFunc: func(context.Context, Request) (json.RawMessage, error) {
		atomic.AddInt32(&calls, 1)
		return nil, ErrNoAPIKey
	}}
	r := WithRetry(f, 3)
	r.baseDelay = time.Millisecond

	_, err := r.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNoAPIKey)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRetry_StopsWhenContextEnds(t *testing.T) {
	f := &Fake{ChatFunc: func(context.Context, ChatRequest) (string, error) {
		return "", errors.New("429 rate limited")
	}}
	r := WithRetry(f, 5)
	r.baseDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Chat(ctx, ChatRequest{})
	assert.Error(t, err)
	assert.Len(t, f.Chats(), 1)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "no API key configured", Describe(ErrNoAPIKey))
	assert.Equal(t, "quota exhausted or rate limited", Describe(errors.New("Error 429, Status: RESOURCE_EXHAUSTED")))
	assert.Equal(t, "host not found (are you offline?)", Describe(errors.New("dial tcp: lookup x: no such host")))
	assert.Equal(t, "access denied: check your API key", DescribeHTTP(403, []byte("nope")))
	assert.Equal(t, "API key not valid", DescribeHTTP(400, []byte(`{"error":{"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)))
}
