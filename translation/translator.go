package translation

import "context"

// Translator converts text into the target language. The source language is left
// to the provider to detect.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
	Name() string
}
