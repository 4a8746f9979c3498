package ports

import (
	"context"
	"time"
)

// Transcript is the result of a speech-to-text call.
type Transcript struct {
	Text       string
	Confidence float64
	Language   string
	Duration   time.Duration
}

// Transcriber converts recorded audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename, language string) (*Transcript, error)
}

// Speech is synthesized audio.
type Speech struct {
	Audio       []byte
	ContentType string
}

// Synthesizer converts text to audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice, format string) (*Speech, error)
}
