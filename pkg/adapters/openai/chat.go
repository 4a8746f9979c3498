package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gogpt "github.com/sashabaranov/go-openai"

	"github.com/aretw0/docent/pkg/domain"
)

// Generate sends the system instruction followed by history and returns the
// trimmed completion.
func (c *Client) Generate(ctx context.Context, system string, history []domain.Message) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}

	messages := make([]gogpt.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, gogpt.ChatCompletionMessage{Role: gogpt.ChatMessageRoleSystem, Content: system})
	for _, m := range history {
		messages = append(messages, gogpt.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.api.CreateChatCompletion(ctx, gogpt.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: float32(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
