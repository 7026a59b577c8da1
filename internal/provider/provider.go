// Package provider talks to the generative model that fills the lesson
// screens.
package provider

import (
	"context"
	"encoding/json"
	"errors"

	"google.golang.org/genai"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Request asks for a JSON document shaped by Schema.
type Request struct {
	// Prompt is the fully rendered instruction.
	Prompt string
	// Parts are extra text parts sent after the prompt, such as a transcript
	// to analyse.
	Parts       []string
	Schema      *genai.Schema
	Temperature float32
	System      string
}

// ChatRequest continues a free-form tutor conversation.
type ChatRequest struct {
	System  string
	History []Message
	Message string
}

// Generator is the model collaborator. Generate returns the raw JSON the
// model produced; the caller validates and decodes it.
type Generator interface {
	Generate(ctx context.Context, req Request) (json.RawMessage, error)
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

var (
	// ErrEmptyResponse is returned when the model answered with no text.
	ErrEmptyResponse = errors.New("no response from model")
	// ErrNoAPIKey is returned when a call is made without a credential.
	ErrNoAPIKey = errors.New("API key is missing")
)
