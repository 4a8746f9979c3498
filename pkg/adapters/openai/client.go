// Package openai talks to the OpenAI REST API for chat completions,
// transcription and speech synthesis.
package openai

import (
	"errors"
	"net/http"
	"time"

	gogpt "github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL         = "https://api.openai.com/v1"
	DefaultChatModel       = "gpt-4o-mini"
	DefaultTranscribeModel = "gpt-4o-mini-transcribe"
	DefaultSpeechModel     = "gpt-4o-mini-tts"
	DefaultVoice           = "coral"
	DefaultFormat          = "mp3"
	DefaultMaxTokens       = 150
	DefaultTemperature     = 0.7
	DefaultTimeout         = 60 * time.Second
)

// ErrMissingAPIKey is returned by every call when no key was configured.
var ErrMissingAPIKey = errors.New("openai: API key not configured")

// Client implements ports.Oracle, ports.Transcriber and ports.Synthesizer.
type Client struct {
	api             *gogpt.Client
	apiKey          string
	baseURL         string
	chatModel       string
	transcribeModel string
	speechModel     string
	voice           string
	maxTokens       int
	temperature     float64
	httpClient      *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL points the client at a compatible endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithChatModel sets the completion model.
func WithChatModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.chatModel = model
		}
	}
}

// WithTranscribeModel sets the speech-to-text model.
func WithTranscribeModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.transcribeModel = model
		}
	}
}

// WithSpeechModel sets the text-to-speech model.
func WithSpeechModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.speechModel = model
		}
	}
}

// WithVoice sets the voice used when a request does not name one.
func WithVoice(voice string) Option {
	return func(c *Client) {
		if voice != "" {
			c.voice = voice
		}
	}
}

// WithMaxTokens bounds the length of completions.
func WithMaxTokens(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithTemperature sets the sampling temperature of completions.
func WithTemperature(t float64) Option {
	return func(c *Client) {
		c.temperature = t
	}
}

// New creates a client authenticated with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:          apiKey,
		baseURL:         DefaultBaseURL,
		chatModel:       DefaultChatModel,
		transcribeModel: DefaultTranscribeModel,
		speechModel:     DefaultSpeechModel,
		voice:           DefaultVoice,
		maxTokens:       DefaultMaxTokens,
		temperature:     DefaultTemperature,
		httpClient:      &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	cfg := gogpt.DefaultConfig(apiKey)
	cfg.BaseURL = c.baseURL
	cfg.HTTPClient = c.httpClient
	c.api = gogpt.NewClientWithConfig(cfg)
	return c
}

func (c *Client) ready() error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
