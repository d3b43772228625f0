package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bamcapital/bam-portal/internal/models"
)

// ChatClient communicates with the financial-advisor chat API.
// Unlike the advisory client, chat errors propagate: the session loop
// turns them into transcript entries rather than swallowing them.
type ChatClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewChatClient creates a new client for the chat endpoint.
func NewChatClient(endpoint string, timeout time.Duration) *ChatClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChatClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ask sends one query and returns the advisor's answer.
// POST {query} -> {answer, sources, timestamp}.
func (c *ChatClient) Ask(ctx context.Context, query string) (*models.ChatAnswer, error) {
	jsonData, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach financial advisor service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("advisor service returned %d: %s", resp.StatusCode, string(body))
	}

	var answer models.ChatAnswer
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if answer.Answer == "" {
		if answer.Message != "" {
			return nil, fmt.Errorf("advisor service error: %s", answer.Message)
		}
		return nil, fmt.Errorf("advisor service returned an empty answer")
	}

	return &answer, nil
}
