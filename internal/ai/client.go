package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/project-mangla/apsaiassistant/internal/config"
)

// ErrEmptyResponse is returned when the model produces no text.
var ErrEmptyResponse = errors.New("model returned empty response")

// Enhancer rephrases a knowledge base answer into conversational prose.
// Implementations must return the rephrased text or an error; callers
// fall back to templates on failure.
type Enhancer interface {
	Enhance(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Client calls Gemini to rephrase answers. It implements Enhancer.
type Client struct {
	client      *genai.Client
	modelName   string
	temperature float32
	maxTokens   int32
}

// NewClient creates a Gemini-backed enhancer from the application config.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &Client{
		client:      client,
		modelName:   cfg.ModelName,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxOutputTokens,
	}, nil
}

// Enhance sends the prompt pair to the model and returns its reply with
// markdown emphasis stripped, since responses render as plain text.
func (c *Client) Enhance(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(userPrompt, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(c.temperature),
		MaxOutputTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}

	return stripMarkdown(text), nil
}

// stripMarkdown removes emphasis markers the model tends to emit.
func stripMarkdown(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	return strings.ReplaceAll(s, "*", "")
}
