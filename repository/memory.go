package repository

import (
	"context"
	"sort"
	"sync"

	"speech-translate/entities"
)

type memoryRepo struct {
	mu      sync.RWMutex
	records []entities.TranscriptionRecord
}

// NewMemoryRepo keeps records in process memory; everything is lost on restart.
func NewMemoryRepo() HistoryRepository {
	return &memoryRepo{}
}

func (r *memoryRepo) Insert(ctx context.Context, record *entities.TranscriptionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	prepareInsert(record)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	return nil
}

func (r *memoryRepo) FindByOwner(ctx context.Context, ownerID string) ([]entities.TranscriptionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	out := make([]entities.TranscriptionRecord, 0)
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].OwnerID == ownerID {
			out = append(out, r.records[i])
		}
	}
	r.mu.RUnlock()

	// walked newest insert first, so the stable sort keeps later inserts ahead on equal timestamps
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
