package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const maxTokens = 1024

// Client calls an OpenAI-compatible vision model and normalizes its reply.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient creates a vision client for the given API key and model.
func NewClient(apiKey, model string) *Client {
	return &Client{api: openai.NewClient(apiKey), model: model}
}

// Analyze sends the image URL to the model and returns the normalized
// analysis. Transport failures propagate; malformed replies do not, thanks
// to Normalize.
func (c *Client) Analyze(ctx context.Context, imageURL string) (Result, error) {
	model := c.model
	if model == "" {
		model = "gpt-4o-mini"
	}
	req := openai.ChatCompletionRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: analysisPrompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, errors.New("empty completion response")
	}

	return Normalize(resp.Choices[0].Message.Content), nil
}
