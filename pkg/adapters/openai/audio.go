package openai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	gogpt "github.com/sashabaranov/go-openai"

	"github.com/aretw0/docent/pkg/ports"
)

var contentTypes = map[string]string{
	"mp3":  "audio/mpeg",
	"opus": "audio/ogg",
	"aac":  "audio/aac",
	"flac": "audio/flac",
	"wav":  "audio/wav",
	"pcm":  "audio/pcm",
}

// Transcribe uploads audio and returns its transcript. The API reports no
// confidence, so it is always 1.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename, language string) (*ports.Transcript, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if filename == "" {
		filename = "audio.wav"
	}

	resp, err := c.api.CreateTranscription(ctx, gogpt.AudioRequest{
		Model:    c.transcribeModel,
		Reader:   bytes.NewReader(audio),
		FilePath: filename,
		Language: language,
	})
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}
	return &ports.Transcript{
		Text:       strings.TrimSpace(resp.Text),
		Confidence: 1.0,
		Language:   language,
	}, nil
}

// Synthesize renders text as audio. Empty voice and format use the client
// defaults.
func (c *Client) Synthesize(ctx context.Context, text, voice, format string) (*ports.Speech, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if voice == "" {
		voice = c.voice
	}
	if format == "" {
		format = DefaultFormat
	}

	raw, err := c.api.CreateSpeech(ctx, gogpt.CreateSpeechRequest{
		Model:          gogpt.SpeechModel(c.speechModel),
		Input:          text,
		Voice:          gogpt.SpeechVoice(voice),
		ResponseFormat: gogpt.SpeechResponseFormat(format),
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	defer raw.Close()

	audio, err := io.ReadAll(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech: %w", err)
	}

	ct, ok := contentTypes[format]
	if !ok {
		ct = "application/octet-stream"
	}
	return &ports.Speech{Audio: audio, ContentType: ct}, nil
}
