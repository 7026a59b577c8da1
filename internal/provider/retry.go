package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// RetryGenerator wraps a Generator with exponential backoff for transient
// failures. Missing credentials and malformed answers are not retried.
type RetryGenerator struct {
	inner      Generator
	maxRetries int
	baseDelay  time.Duration
}

func WithRetry(g Generator, maxRetries int) *RetryGenerator {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryGenerator{inner: g, maxRetries: maxRetries, baseDelay: 500 * time.Millisecond}
}

func (r *RetryGenerator) Generate(ctx context.Context, req Request) (json.RawMessage, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		out, err := r.inner.Generate(ctx, req)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !isRetryable(err) || attempt == r.maxRetries {
			break
		}
		if err := r.backoff(ctx, attempt); err != nil {
			return nil, lastErr
		}
	}
	if r.maxRetries > 0 {
		return nil, fmt.Errorf("after %d retries: %w", r.maxRetries, lastErr)
	}
	return nil, lastErr
}

func (r *RetryGenerator) Chat(ctx context.Context, req ChatRequest) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		out, err := r.inner.Chat(ctx, req)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !isRetryable(err) || attempt == r.maxRetries {
			break
		}
		if err := r.backoff(ctx, attempt); err != nil {
			return "", lastErr
		}
	}
	if r.maxRetries > 0 {
		return "", fmt.Errorf("after %d retries: %w", r.maxRetries, lastErr)
	}
	return "", lastErr
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrNoAPIKey) || errors.Is(err, context.Canceled) {
		return false
	}
	msg := err.Error()
	// Rate limits, server errors and dropped connections.
	for _, s := range []string{"429", "500", "502", "503", "504", "RESOURCE_EXHAUSTED", "UNAVAILABLE", "connection refused", "timeout", "EOF", "reset by peer"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

func (r *RetryGenerator) backoff(ctx context.Context, attempt int) error {
	delay := time.Duration(float64(r.baseDelay) * math.Pow(2, float64(attempt)))
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
