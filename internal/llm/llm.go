package llm

import (
	"context"
	"errors"
	"strings"
)

// Completer sends a single prompt to a language-model provider and returns its raw text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned when a provider has no usable credential.
var ErrNotConfigured = errors.New("llm provider not configured")

// minKeyLength rejects obviously truncated or dummy credentials.
const minKeyLength = 10

// KeyConfigured reports whether key looks like a real credential: present,
// longer than minKeyLength, and not containing any of the placeholder markers.
func KeyConfigured(key string, placeholders ...string) bool {
	key = strings.TrimSpace(key)
	if len(key) <= minKeyLength {
		return false
	}
	for _, p := range placeholders {
		if p != "" && strings.Contains(key, p) {
			return false
		}
	}
	return true
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
