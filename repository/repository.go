package repository

import (
	"context"

	"speech-translate/entities"
)

// HistoryRepository stores transcription records. Records are never updated or deleted.
type HistoryRepository interface {
	// Insert assigns ID (and CreatedAt when zero) and persists the record.
	Insert(ctx context.Context, record *entities.TranscriptionRecord) error
	// FindByOwner returns every record of ownerID, newest first.
	FindByOwner(ctx context.Context, ownerID string) ([]entities.TranscriptionRecord, error)
}

// Migrator is implemented by stores that need their schema or indexes prepared.
type Migrator interface {
	Migrate(ctx context.Context) error
}
