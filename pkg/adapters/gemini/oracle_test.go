package gemini_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/docent/pkg/adapters/gemini"
	"github.com/aretw0/docent/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	reply    string
	err      error
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model, f.contents, f.config = model, contents, config
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(f.reply, genai.RoleModel),
		}},
	}, nil
}

func TestGenerate_MapsRoles(t *testing.T) {
	models := &fakeModels{reply: " Did it feel playful? "}
	oracle := gemini.NewWithGenerator(models)

	out, err := oracle.Generate(context.Background(), "persona", []domain.Message{
		{Role: domain.RoleUser, Content: "hi"},
		{Role: domain.RoleAssistant, Content: "hello"},
		{Role: domain.RoleUser, Content: "faces"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Did it feel playful?", out)

	assert.Equal(t, gemini.DefaultModel, models.model)
	require.Len(t, models.contents, 3)
	assert.Equal(t, genai.RoleUser, models.contents[0].Role)
	assert.Equal(t, genai.RoleModel, models.contents[1].Role)
	assert.Equal(t, "persona", models.config.SystemInstruction.Parts[0].Text)
	assert.EqualValues(t, gemini.DefaultMaxTokens, models.config.MaxOutputTokens)
}

func TestGenerate_EmptyHistoryUsesInstruction(t *testing.T) {
	models := &fakeModels{reply: "Faces"}
	oracle := gemini.NewWithGenerator(models, gemini.WithModel("gemini-test"))

	out, err := oracle.Generate(context.Background(), "classify this", nil)
	require.NoError(t, err)
	assert.Equal(t, "Faces", out)
	assert.Equal(t, "gemini-test", models.model)
	require.Len(t, models.contents, 1)
	assert.Equal(t, "classify this", models.contents[0].Parts[0].Text)
}

func TestGenerate_Errors(t *testing.T) {
	_, err := gemini.NewWithGenerator(&fakeModels{err: errors.New("quota")}).Generate(context.Background(), "s", nil)
	assert.Error(t, err)

	_, err = gemini.NewWithGenerator(&fakeModels{reply: "  "}).Generate(context.Background(), "s", nil)
	assert.Error(t, err)

	_, err = gemini.New(context.Background(), "")
	assert.ErrorIs(t, err, gemini.ErrMissingAPIKey)
}
