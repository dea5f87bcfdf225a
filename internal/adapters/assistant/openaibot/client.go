package openaibot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = "Sos el asistente de una tienda de celulares y accesorios. " +
	"Respondé en portugués de Brasil, en pocas líneas, sobre productos, pedidos y pagos."

type Client struct {
	client *openai.Client
	model  string
}

// NewClient uses the public OpenAI endpoint unless baseURL is set.
func NewClient(apiKey, model, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Client{client: openai.NewClientWithConfig(cfg), model: model}
}

func (c *Client) Reply(ctx context.Context, message string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: respuesta sin opciones")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
