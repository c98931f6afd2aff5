// Package agent talks to the external spending-analysis service. This is the
// only place in the repo that performs network I/O for insights; the engines
// never do.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

type config interface {
	URL() string
	AgentID() string
	APIKey() string
}

type Client struct {
	url     string
	agentID string
	apiKey  string
	client  *http.Client
}

func New(cfg config) *Client {
	return &Client{
		url:     cfg.URL(),
		agentID: cfg.AgentID(),
		apiKey:  cfg.APIKey(),
		client:  &http.Client{},
	}
}

type askRequest struct {
	Message string `json:"message"`
	AgentID string `json:"agent_id"`
}

type askResponse struct {
	Success bool `json:"success"`
	// Response is either a plain string or an object with optional
	// summary / detailed_analysis fields.
	Response json.RawMessage `json:"response"`
}

type structuredAnswer struct {
	Summary          *string `json:"summary"`
	DetailedAnalysis *string `json:"detailed_analysis"`
}

// Ask posts the composed message and extracts the answer text. Preference
// order when the answer is structured: summary, then detailed_analysis, then
// the raw JSON of the whole object.
func (c *Client) Ask(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(askRequest{Message: message, AgentID: c.agentID})
	if err != nil {
		return "", errors.Wrap(err, "marshalling request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling analysis service")
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading response")
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("analysis service returned status %d", res.StatusCode)
	}

	var parsed askResponse
	if err = json.Unmarshal(raw, &parsed); err != nil {
		return "", errors.Wrap(err, "unmarshalling response")
	}
	if !parsed.Success || len(parsed.Response) == 0 {
		return "", errors.New("analysis service reported failure (success = false)")
	}

	return extractAnswer(parsed.Response)
}

func extractAnswer(raw json.RawMessage) (string, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}

	var structured structuredAnswer
	if err := json.Unmarshal(raw, &structured); err != nil {
		return "", errors.Wrap(err, "unexpected response shape")
	}
	if structured.Summary != nil {
		return *structured.Summary, nil
	}
	if structured.DetailedAnalysis != nil {
		return *structured.DetailedAnalysis, nil
	}
	return string(raw), nil
}
