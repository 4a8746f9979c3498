package gcpspeech

import (
	"context"
	"errors"
	"testing"
	"time"

	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/durationpb"
)

func TestTranscribe(t *testing.T) {
	var got *speechpb.RecognizeRequest
	tr := NewWithRecognizer(func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		got = req
		return &speechpb.RecognizeResponse{
			Results: []*speechpb.SpeechRecognitionResult{
				{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "I liked ", Confidence: 0.9}}, LanguageCode: "en-us"},
				{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "the sandbox", Confidence: 0.7}}},
				{},
			},
			TotalBilledTime: durationpb.New(3 * time.Second),
		}, nil
	}, WithModel("latest_short"))

	out, err := tr.Transcribe(context.Background(), []byte("RIFF"), "clip.wav", "")
	require.NoError(t, err)
	assert.Equal(t, "I liked the sandbox", out.Text)
	assert.InDelta(t, 0.8, out.Confidence, 0.001)
	assert.Equal(t, "en-us", out.Language)
	assert.Equal(t, 3*time.Second, out.Duration)

	assert.Equal(t, speechpb.RecognitionConfig_LINEAR16, got.GetConfig().GetEncoding())
	assert.Equal(t, DefaultLanguage, got.GetConfig().GetLanguageCode())
	assert.Equal(t, "latest_short", got.GetConfig().GetModel())
	assert.Equal(t, []byte("RIFF"), got.GetAudio().GetContent())
}

func TestTranscribe_Error(t *testing.T) {
	tr := NewWithRecognizer(func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		return nil, errors.New("unavailable")
	})
	_, err := tr.Transcribe(context.Background(), []byte("x"), "clip.webm", "pt-BR")
	assert.Error(t, err)
	assert.NoError(t, tr.Close())
}

func TestEncodingFor(t *testing.T) {
	assert.Equal(t, speechpb.RecognitionConfig_WEBM_OPUS, encodingFor("a.WEBM"))
	assert.Equal(t, speechpb.RecognitionConfig_OGG_OPUS, encodingFor("a.opus"))
	assert.Equal(t, speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, encodingFor("a"))
}

func TestClientOptionsFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	assert.Empty(t, ClientOptionsFromEnv())

	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/etc/creds.json")
	assert.Len(t, ClientOptionsFromEnv(), 1)
}
