package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/vbonduro/paani/internal/chat"
)

const DefaultModel = "gemini-1.5-flash"

type Responder struct {
	client *genai.Client
	model  string
}

var _ chat.Responder = (*Responder)(nil)

// NewResponder creates a Gemini API client. baseURL overrides the API endpoint
// and is empty outside tests.
func NewResponder(ctx context.Context, apiKey, model, baseURL string) (*Responder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Responder{client: client, model: model}, nil
}

func (r *Responder) Respond(ctx context.Context, prompt string) (string, error) {
	resp, err := r.client.Models.GenerateContent(ctx, r.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini: %w", err)
	}

	var parts []string
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if p != nil && !p.Thought {
				parts = append(parts, p.Text)
			}
		}
		// Only the first candidate is used.
		break
	}
	return chat.JoinText(parts)
}
