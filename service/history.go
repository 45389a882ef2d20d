package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"speech-translate/entities"
	"speech-translate/repository"
)

type HistoryService interface {
	History(ctx context.Context, ownerID string) ([]entities.TranscriptionRecord, error)
}

type historyService struct {
	repo repository.HistoryRepository
}

func NewHistoryService(repo repository.HistoryRepository) HistoryService {
	return &historyService{repo: repo}
}

func (s *historyService) History(ctx context.Context, ownerID string) ([]entities.TranscriptionRecord, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}

	records, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("user_id", ownerID).Msg("failed to fetch history")
		return nil, errors.Join(ErrHistoryQuery, err)
	}
	if records == nil {
		records = []entities.TranscriptionRecord{}
	}
	return records, nil
}
