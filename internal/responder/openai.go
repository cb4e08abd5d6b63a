package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/calliof/switchboard/internal/domain"
)

// OpenAIClient talks to an OpenAI-compatible chat-completions endpoint
// (Groq, OpenAI, or a local server exposing the same API).
type OpenAIClient struct {
	baseURL string
	apiKey  string
	model   string
	system  string
	client  *http.Client
}

// NewOpenAIClient creates a responder client for an OpenAI-compatible API.
// baseURL should be like "https://api.groq.com/openai/v1".
func NewOpenAIClient(baseURL, apiKey, model, system string, timeout time.Duration) *OpenAIClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		system:  system,
		client:  &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends the conversation turns and parses the structured reply.
func (c *OpenAIClient) Complete(ctx context.Context, turns []domain.Turn) (domain.Reply, error) {
	messages := make([]chatMessage, 0, len(turns)+1)
	if c.system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: c.system})
	}
	for _, t := range turns {
		messages = append(messages, chatMessage{Role: t.Role, Content: t.Content})
	}

	payload, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return domain.Reply{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return domain.Reply{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Reply{}, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.Reply{}, fmt.Errorf("parsing response: %w", err)
	}
	if result.Error != nil {
		return domain.Reply{}, fmt.Errorf("API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return domain.Reply{}, fmt.Errorf("empty completion")
	}

	return ParseReply(result.Choices[0].Message.Content), nil
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string {
	return "openai-compat"
}
