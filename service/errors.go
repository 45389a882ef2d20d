package service

import "errors"

var (
	ErrMissingAudio  = errors.New("no audio buffer")
	ErrMissingOwner  = errors.New("user id is required")
	ErrTranscription = errors.New("transcription provider error")
	ErrTranslation   = errors.New("translation provider error")
	// ErrPersistence never fails a request; it is only reported on Outcome.PersistErr.
	ErrPersistence  = errors.New("failed to persist transcription")
	ErrHistoryQuery = errors.New("failed to fetch history")
)
