// Package gemini implements the oracle on Google's Gemini models.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/docent/pkg/domain"
	"google.golang.org/genai"
)

const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultMaxTokens   = 150
	DefaultTemperature = 0.7
)

// ErrMissingAPIKey is returned by New when no key is given.
var ErrMissingAPIKey = errors.New("gemini: API key is required")

// ContentGenerator is the subset of genai.Models the oracle calls.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Oracle phrases replies through GenerateContent.
type Oracle struct {
	models      ContentGenerator
	model       string
	maxTokens   int32
	temperature float32
}

// Option configures the Oracle.
type Option func(*Oracle)

// WithModel sets the Gemini model name.
func WithModel(model string) Option {
	return func(o *Oracle) {
		if model != "" {
			o.model = model
		}
	}
}

// WithMaxTokens bounds the length of replies.
func WithMaxTokens(n int) Option {
	return func(o *Oracle) {
		if n > 0 {
			o.maxTokens = int32(n)
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *Oracle) {
		o.temperature = float32(t)
	}
}

// New creates an oracle authenticated with apiKey.
func New(ctx context.Context, apiKey string, opts ...Option) (*Oracle, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return NewWithGenerator(client.Models, opts...), nil
}

// NewWithGenerator creates an oracle on an existing generator.
func NewWithGenerator(models ContentGenerator, opts ...Option) *Oracle {
	o := &Oracle{
		models:      models,
		model:       DefaultModel,
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Generate sends history with system as the system instruction.
func (o *Oracle) Generate(ctx context.Context, system string, history []domain.Message) (string, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	// Classification calls carry no history; the instruction itself is the turn.
	if len(contents) == 0 {
		contents = append(contents, genai.NewContentFromText(system, genai.RoleUser))
	}

	resp, err := o.models.GenerateContent(ctx, o.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		MaxOutputTokens:   o.maxTokens,
		Temperature:       genai.Ptr(o.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no completion returned")
	}
	return text, nil
}
