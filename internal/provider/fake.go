package provider

import (
	"context"
	"encoding/json"
	"sync"
)

// Fake is an in-memory Generator for tests and offline demos. GenerateFunc
// and ChatFunc default to returning "{}" and an empty reply.
type Fake struct {
	GenerateFunc func(ctx context.Context, req Request) (json.RawMessage, error)
	ChatFunc     func(ctx context.Context, req ChatRequest) (string, error)

	mu       sync.Mutex
	requests []Request
	chats    []ChatRequest
}

func (f *Fake) Generate(ctx context.Context, req Request) (json.RawMessage, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.GenerateFunc == nil {
		return json.RawMessage(`{}`), nil
	}
	return f.GenerateFunc(ctx, req)
}

func (f *Fake) Chat(ctx context.Context, req ChatRequest) (string, error) {
	f.mu.Lock()
	f.chats = append(f.chats, req)
	f.mu.Unlock()
	if f.ChatFunc == nil {
		return "", nil
	}
	return f.ChatFunc(ctx, req)
}

// Requests returns the Generate calls seen so far.
func (f *Fake) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

func (f *Fake) Chats() []ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ChatRequest(nil), f.chats...)
}
