package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultModel     = "gemini-2.5-flash"
	completionTemp   = 0.4
	completionTokens = 450
)

// GeminiClient implements LLMClient using Google's Gemini API.
type GeminiClient struct {
	client  *genai.Client
	modelID string
}

// NewGeminiClient creates a new Gemini completion client.
func NewGeminiClient(ctx context.Context, apiKey, modelID string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("chat: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = defaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("chat: failed to create gemini client: %w", err)
	}

	return &GeminiClient{client: client, modelID: modelID}, nil
}

// Complete sends one non-streaming completion request.
func (c *GeminiClient) Complete(ctx context.Context, system, user string) (string, error) {
	model := c.client.GenerativeModel(c.modelID)
	model.SetTemperature(completionTemp)
	model.SetMaxOutputTokens(completionTokens)
	if strings.TrimSpace(system) != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(system))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("chat: gemini completion failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("chat: gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("chat: gemini returned empty content")
	}

	var out strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	return strings.TrimSpace(out.String()), nil
}

// Close releases resources held by the Gemini client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
