// Package translate defines the translation-service contract consumed by
// the document pipeline, along with a chat-completions client implementing
// it.
package translate

import "context"

// Translator turns text in one language into another. Implementations may
// return an error string inside the translated text rather than an error
// value; callers treat the result as opaque text either way.
type Translator interface {
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error)
}

// Identity returns its input unchanged. Used when no translation service is
// configured and by tests that exercise the structural round trip.
type Identity struct{}

// Translate returns text as-is.
func (Identity) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}
