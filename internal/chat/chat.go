package chat

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyResponse is returned when the upstream model produced no text.
var ErrEmptyResponse = errors.New("model returned an empty response")

// Responder sends a prompt to a text-generation model and returns its output
// unmodified.
type Responder interface {
	Respond(ctx context.Context, prompt string) (string, error)
}

// BuildPrompt joins the caller-supplied context text and question into the single
// prompt forwarded upstream.
func BuildPrompt(knowledge, question string) string {
	return knowledge + "\n\nQuestion: " + question
}

// JoinText concatenates the text parts of a model response.
func JoinText(parts []string) (string, error) {
	text := strings.Join(parts, "")
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
