package stt

import "context"

// Result is the best transcript alternative for the first audio channel.
type Result struct {
	Transcript string
	Confidence float64
	// NoSpeech is set when the provider answered but produced no usable alternative.
	NoSpeech bool
}

// Transcriber converts raw audio bytes into text. Implementations make exactly one
// outbound call per invocation.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (Result, error)
	Name() string
}
