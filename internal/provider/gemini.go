package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// GeminiOptions configures the Gemini backend.
type GeminiOptions struct {
	Model   string
	BaseURL string
	// Timeout bounds a single HTTP exchange. Zero means no limit.
	Timeout time.Duration
}

// Gemini generates content with the Gemini API. The credential is read on
// every call so a key entered in the settings screen is used at once.
type Gemini struct {
	key  func() string
	opts GeminiOptions

	mu        sync.Mutex
	client    *genai.Client
	clientKey string
}

func NewGemini(key func() string, opts GeminiOptions) *Gemini {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	return &Gemini{key: key, opts: opts}
}

func (g *Gemini) Model() string { return g.opts.Model }

// clientFor returns a client bound to the current key, building a new one
// when the key changed since the last call.
func (g *Gemini) clientFor(ctx context.Context) (*genai.Client, error) {
	key := g.key()
	if key == "" {
		return nil, ErrNoAPIKey
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil && g.clientKey == key {
		return g.client, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	}
	if g.opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.opts.BaseURL}
	}
	if g.opts.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: g.opts.Timeout}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.client = client
	g.clientKey = key
	return client, nil
}

func (g *Gemini) Generate(ctx context.Context, req Request) (json.RawMessage, error) {
	client, err := g.clientFor(ctx)
	if err != nil {
		return nil, err
	}

	parts := make([]*genai.Part, 0, 1+len(req.Parts))
	parts = append(parts, genai.NewPartFromText(req.Prompt))
	for _, p := range req.Parts {
		parts = append(parts, genai.NewPartFromText(p))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
		Temperature:      genai.Ptr(req.Temperature),
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := client.Models.GenerateContent(ctx, g.opts.Model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, ErrEmptyResponse
	}
	// Some models wrap JSON in a markdown fence despite the MIME type.
	text = stripFence(text)
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("gemini generate: response is not valid JSON")
	}
	return json.RawMessage(text), nil
}

func (g *Gemini) Chat(ctx context.Context, req ChatRequest) (string, error) {
	client, err := g.clientFor(ctx)
	if err != nil {
		return "", err
	}

	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, m := range req.History {
		var role genai.Role = genai.RoleUser
		if m.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(req.Message, genai.RoleUser))

	var cfg *genai.GenerateContentConfig
	if req.System != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		}
	}
	resp, err := client.Models.GenerateContent(ctx, g.opts.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini chat: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
