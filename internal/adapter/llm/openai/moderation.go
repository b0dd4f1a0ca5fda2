package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"assistant/internal/adapter/restclient"
	"assistant/internal/app/ports"
)

var ErrNoModerationResult = errors.New("moderation returned no result")

type Moderator struct {
	rest    *restclient.Client
	baseURL string
	apiKey  string
	model   string
}

func NewModerator(rest *restclient.Client, baseURL, apiKey, model string) *Moderator {
	if model == "" {
		model = DefaultModerationModel
	}
	return &Moderator{rest: rest, baseURL: normalizeBaseURL(baseURL), apiKey: apiKey, model: model}
}

type moderationRequest struct {
	Model string `json:"model,omitempty"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []struct {
		Flagged    bool            `json:"flagged"`
		Categories map[string]bool `json:"categories"`
	} `json:"results"`
}

// Moderate never reports "not flagged" on failure: any transport or shape
// problem comes back as an error.
func (m *Moderator) Moderate(ctx context.Context, text string) (ports.ModerationVerdict, error) {
	var headers map[string]string
	if m.apiKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + m.apiKey}
	}
	var resp moderationResponse
	err := m.rest.DoJSON(ctx, http.MethodPost, m.baseURL+"/moderations", headers, moderationRequest{Model: m.model, Input: text}, &resp)
	if err != nil {
		return ports.ModerationVerdict{}, fmt.Errorf("moderation: %w", err)
	}
	if len(resp.Results) == 0 {
		return ports.ModerationVerdict{}, ErrNoModerationResult
	}
	verdict := ports.ModerationVerdict{Categories: map[string]bool{}}
	for _, r := range resp.Results {
		verdict.Flagged = verdict.Flagged || r.Flagged
		for name, hit := range r.Categories {
			verdict.Categories[name] = verdict.Categories[name] || hit
		}
	}
	return verdict, nil
}

var _ ports.Moderator = (*Moderator)(nil)
