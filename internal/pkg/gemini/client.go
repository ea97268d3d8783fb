// Package gemini wraps the generative-AI client behind the TextGenerator
// interface the chatbot service consumes.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/stellarion/backend/internal/pkg/apperrors"
)

const defaultModel = "gemini-1.5-flash"

// Client proxies chat questions to the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient connects to the Gemini API.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// GenerateReply sends one question and returns the model's text reply.
// Provider failures surface as ErrUpstreamFailure so handlers map them
// uniformly.
func (c *Client) GenerateReply(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.4)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUpstreamFailure, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: empty completion", apperrors.ErrUpstreamFailure)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	reply := strings.TrimSpace(sb.String())
	if reply == "" {
		return "", fmt.Errorf("%w: no text parts in completion", apperrors.ErrUpstreamFailure)
	}
	return reply, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}
