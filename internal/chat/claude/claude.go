package claude

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/vbonduro/paani/internal/chat"
)

// maxTokens bounds a single FAQ answer; replies are a few short paragraphs.
const maxTokens = 1024

type Responder struct {
	client *anthropic.Client
	model  string
}

var _ chat.Responder = (*Responder)(nil)

func NewResponder(apiKey, model string, opts ...anthropic.ClientOption) *Responder {
	return &Responder{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (r *Responder) Respond(ctx context.Context, prompt string) (string, error) {
	resp, err := r.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(r.model),
		MaxTokens: maxTokens,
		Messages:  []anthropic.Message{anthropic.NewUserTextMessage(prompt)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call claude: %w", err)
	}

	var parts []string
	for _, c := range resp.Content {
		if c.Type == anthropic.MessagesContentTypeText {
			parts = append(parts, c.GetText())
		}
	}
	return chat.JoinText(parts)
}
