// Package health checks that the Gemini endpoint is reachable with the
// configured key.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jeanpaul/wortschatz/internal/provider"
)

type Status struct {
	BaseURL   string
	Reachable bool
	// ModelFound reports whether the configured model is listed.
	ModelFound bool
	Models     []string
	Error      string
	Latency    time.Duration
}

// Checker probes the model listing endpoint.
type Checker struct {
	Client *http.Client
	// Timeout bounds the whole check. Defaults to 10s.
	Timeout time.Duration
}

// Check lists the models visible to apiKey at baseURL and looks for model.
func (c Checker) Check(ctx context.Context, baseURL, apiKey, model string) (s Status) {
	s.BaseURL = baseURL
	start := time.Now()
	defer func() { s.Latency = time.Since(start) }()

	if apiKey == "" {
		s.Error = "no API key configured (set it in the settings or GEMINI_API_KEY)"
		return s
	}
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := strings.TrimRight(baseURL, "/") + "/v1beta/models?pageSize=1000"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.Error = err.Error()
		return s
	}
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		s.Error = fmt.Sprintf("cannot reach %s: %s", baseURL, provider.Describe(err))
		return s
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusOK {
		s.Error = provider.DescribeHTTP(resp.StatusCode, body)
		return s
	}
	s.Reachable = true

	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		// Reachable, but the listing is not what we expected.
		return s
	}
	for _, m := range result.Models {
		name := strings.TrimPrefix(m.Name, "models/")
		s.Models = append(s.Models, name)
		if name == model {
			s.ModelFound = true
		}
	}
	return s
}
