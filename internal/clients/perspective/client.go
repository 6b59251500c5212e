package perspective

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	attributeToxicity = "TOXICITY"
	apiKeyHeader      = "X-Goog-Api-Key"
)

var ErrNoScore = errors.New("perspective: toxicity score missing from response")

type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func New(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	Comment             comment             `json:"comment"`
	Languages           []string            `json:"languages,omitempty"`
	RequestedAttributes map[string]struct{} `json:"requestedAttributes"`
}

type comment struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	AttributeScores map[string]struct {
		SummaryScore *struct {
			Value *float64 `json:"value"`
		} `json:"summaryScore"`
	} `json:"attributeScores"`
}

// Toxicity returns the TOXICITY summary score for text.
func (c *Client) Toxicity(ctx context.Context, text string, languages []string) (float64, error) {
	body, err := json.Marshal(analyzeRequest{
		Comment:             comment{Text: text},
		Languages:           languages,
		RequestedAttributes: map[string]struct{}{attributeToxicity: {}},
	})
	if err != nil {
		return 0, fmt.Errorf("perspective: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("perspective: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Kept out of the URL so transport errors never carry the key.
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("perspective: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("perspective: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("perspective: decode response: %w", err)
	}
	attr, ok := out.AttributeScores[attributeToxicity]
	if !ok || attr.SummaryScore == nil || attr.SummaryScore.Value == nil {
		return 0, ErrNoScore
	}
	return *attr.SummaryScore.Value, nil
}
