// Package gcpspeech transcribes visitor audio with Google Cloud Speech-to-Text.
package gcpspeech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/aretw0/docent/pkg/ports"
	"google.golang.org/api/option"
)

// DefaultLanguage is used when a request names no language.
const DefaultLanguage = "en-US"

// RecognizeFunc performs a synchronous recognition request.
type RecognizeFunc func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)

// Transcriber implements ports.Transcriber.
type Transcriber struct {
	recognize RecognizeFunc
	model     string
	close     func() error
}

// Option configures the Transcriber.
type Option func(*Transcriber)

// WithModel selects a recognition model such as "latest_short".
func WithModel(model string) Option {
	return func(t *Transcriber) {
		t.model = model
	}
}

// ClientOptionsFromEnv reads credentials from GOOGLE_APPLICATION_CREDENTIALS_JSON
// (inline JSON) or GOOGLE_APPLICATION_CREDENTIALS (file path). With neither set
// the client falls back to application default credentials.
func ClientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

// New dials the Speech API.
func New(ctx context.Context, opts []option.ClientOption, topts ...Option) (*Transcriber, error) {
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}
	t := NewWithRecognizer(func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		return client.Recognize(ctx, req)
	}, topts...)
	t.close = client.Close
	return t, nil
}

// NewWithRecognizer creates a transcriber on an existing recognition call.
func NewWithRecognizer(fn RecognizeFunc, opts ...Option) *Transcriber {
	t := &Transcriber{recognize: fn, close: func() error { return nil }}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transcribe recognizes audio. The encoding is inferred from the filename
// extension; unknown extensions let the API detect WAV and FLAC headers.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, filename, language string) (*ports.Transcript, error) {
	if language == "" {
		language = DefaultLanguage
	}

	resp, err := t.recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   encodingFor(filename),
			LanguageCode:               language,
			Model:                      t.model,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("speech recognize: %w", err)
	}

	out := &ports.Transcript{Language: language}
	var parts []string
	var confidence float64
	for _, res := range resp.GetResults() {
		alts := res.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		parts = append(parts, strings.TrimSpace(alts[0].GetTranscript()))
		confidence += float64(alts[0].GetConfidence())
		if lc := res.GetLanguageCode(); lc != "" {
			out.Language = lc
		}
	}
	out.Text = strings.Join(parts, " ")
	if len(parts) > 0 {
		out.Confidence = confidence / float64(len(parts))
	}
	if billed := resp.GetTotalBilledTime(); billed != nil {
		out.Duration = billed.AsDuration()
	}
	return out, nil
}

// Close releases the underlying client.
func (t *Transcriber) Close() error {
	return t.close()
}

func encodingFor(filename string) speechpb.RecognitionConfig_AudioEncoding {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return speechpb.RecognitionConfig_LINEAR16
	case ".flac":
		return speechpb.RecognitionConfig_FLAC
	case ".mp3":
		return speechpb.RecognitionConfig_MP3
	case ".ogg", ".opus":
		return speechpb.RecognitionConfig_OGG_OPUS
	case ".webm":
		return speechpb.RecognitionConfig_WEBM_OPUS
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}
