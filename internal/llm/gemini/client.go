// Package gemini implements the structuring boundary over the Gemini API,
// selectable as an alternative to the OpenAI backend.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/meishiscan/cardscan/internal/llm"
)

const defaultModel = "gemini-2.0-flash"

type Client struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

func NewClient(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Client, error) {
	if model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{client: c, model: model, log: logger}, nil
}

// Structure implements llm.Structurer. Temperature 0 for deterministic output.
func (c *Client) Structure(ctx context.Context, text string) (string, error) {
	start := time.Now()
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0)

	resp, err := model.GenerateContent(ctx, genai.Text(llm.BuildPrompt(text)))
	if err != nil {
		c.log.Error("llm.structure.gemini_error", "model", c.model, "error", err)
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in gemini response")
	}
	part, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected part type in gemini response")
	}

	c.log.Info("llm.structure.ok",
		"model", c.model,
		"prompt_version", llm.PromptVersion,
		"content_len", len(string(part)),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return string(part), nil
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	return c.client.Close()
}
