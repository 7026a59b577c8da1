package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DescribeHTTP extracts a readable message from an error response of the
// Gemini REST API.
func DescribeHTTP(statusCode int, body []byte) string {
	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}

	switch statusCode {
	case 400:
		return "bad request: the API key may be malformed"
	case 401, 403:
		return "access denied: check your API key"
	case 404:
		return "model or endpoint not found"
	case 429:
		return "rate limited: too many requests, please wait"
	case 500:
		return "internal server error on the Gemini side"
	case 502, 503:
		return "Gemini service temporarily unavailable"
	}

	s := string(body)
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return fmt.Sprintf("HTTP %d: %s", statusCode, s)
}

// Describe turns a Generator or network error into a short message for logs
// and the doctor command.
func Describe(err error) string {
	if errors.Is(err, ErrNoAPIKey) {
		return "no API key configured"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API_KEY_INVALID"), strings.Contains(msg, "API key not valid"):
		return "the API key was rejected"
	case strings.Contains(msg, "429"), strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return "quota exhausted or rate limited"
	case strings.Contains(msg, "connection refused"):
		return "connection refused"
	case strings.Contains(msg, "no such host"):
		return "host not found (are you offline?)"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "connection timed out"
	case strings.Contains(msg, "EOF"):
		return "connection closed unexpectedly"
	case strings.Contains(msg, "reset by peer"):
		return "connection reset by server"
	}
	return msg
}
