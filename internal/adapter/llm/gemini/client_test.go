package gemini

import (
	"context"
	"errors"
	"testing"

	"assistant/internal/app/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	model  string
	user   string
	config *genai.GenerateContentConfig
	reply  string
	err    error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.user = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(f.reply, genai.RoleModel),
		}},
	}, nil
}

func TestClient_Complete(t *testing.T) {
	models := &fakeModels{reply: `{"task_action": "list", "details": ""}`}
	c := newWithGenerator(models, Config{})

	out, err := c.Complete(context.Background(), "system", "```show tasks```")
	require.NoError(t, err)
	assert.Equal(t, `{"task_action": "list", "details": ""}`, out)
	assert.Equal(t, DefaultModel, models.model)
	assert.Equal(t, "```show tasks```", models.user)
	assert.Equal(t, int32(DefaultMaxTokens), models.config.MaxOutputTokens)
	require.NotNil(t, models.config.Temperature)
	assert.Equal(t, float32(0), *models.config.Temperature)
	require.NotNil(t, models.config.SystemInstruction)
	assert.Equal(t, "system", models.config.SystemInstruction.Parts[0].Text)
}

func TestClient_CompleteErrors(t *testing.T) {
	c := newWithGenerator(&fakeModels{err: errors.New("quota")}, Config{})
	_, err := c.Complete(context.Background(), "s", "u")
	assert.Error(t, err)

	c = newWithGenerator(&fakeModels{reply: "  "}, Config{})
	_, err = c.Complete(context.Background(), "s", "u")
	assert.ErrorIs(t, err, ports.ErrEmptyCompletion)
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}
