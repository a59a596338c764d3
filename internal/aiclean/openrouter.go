// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aiclean

import (
	"context"
	"fmt"
	"strings"

	openrouter "github.com/revrost/go-openrouter"
)

// DefaultModel is the model used when the configuration names none.
const DefaultModel = "openai/gpt-4o-mini"

const (
	// cleanTemperature keeps corrections deterministic.
	cleanTemperature = 0.1
	cleanMaxTokens   = 1000
)

// OpenRouterBackend proofreads lyrics through the OpenRouter chat API.
type OpenRouterBackend struct {
	client *openrouter.Client
	model  string
}

// NewOpenRouterBackend builds a backend from an API key and model name.
func NewOpenRouterBackend(apiKey, model string) (*OpenRouterBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openrouter API key not configured")
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenRouterBackend{
		client: openrouter.NewClient(apiKey),
		model:  model,
	}, nil
}

const cleanPromptFmt = `You are a lyrics proofreader. Fix any OCR/extraction errors in these lyrics.

Song: %q
Section: %s

Extracted lyrics:
%s

Instructions:
1. Fix any merged words (e.g., "Jesuswalked" -> "Jesus walked")
2. Fix any missing letters from ligatures (e.g., "rst" -> "first", "lled" -> "filled")
3. Fix obvious spelling errors
4. Keep the original line breaks and structure
5. Do NOT add or remove lines
6. Do NOT change the meaning or wording (unless it's clearly an error)
7. Return ONLY the corrected lyrics, nothing else

Corrected lyrics:`

// Clean sends one section to the model and returns the corrected text.
func (b *OpenRouterBackend) Clean(ctx context.Context, songTitle, sectionName, lyrics string) (string, error) {
	req := openrouter.ChatCompletionRequest{
		Model:       b.model,
		Temperature: cleanTemperature,
		MaxTokens:   cleanMaxTokens,
		Messages: []openrouter.ChatCompletionMessage{
			{
				Role:    openrouter.ChatMessageRoleUser,
				Content: openrouter.Content{Text: fmt.Sprintf(cleanPromptFmt, songTitle, sectionName, lyrics)},
			},
		},
	}

	resp, err := b.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content.Text)
	if out == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}
	return out, nil
}
