package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"speech-translate/constant"
	"speech-translate/dto"
	"speech-translate/entities"
	"speech-translate/repository"
	"speech-translate/storage"
	"speech-translate/stt"
	"speech-translate/translation"
)

type stage string

const (
	stageValidating   stage = "validating"
	stageTranscribing stage = "transcribing"
	stageEmptySpeech  stage = "empty_speech"
	stageTranslating  stage = "translating"
	stageArchiving    stage = "archiving"
	stagePersisting   stage = "persisting"
	stagePublishing   stage = "publishing"
	stageResponding   stage = "responding"
	stageFailed       stage = "failed"
)

// Publisher announces persisted transcriptions.
type Publisher interface {
	Publish(ctx context.Context, msg dto.TranscriptionCreatedMessage) error
}

type UploadRequest struct {
	Audio          []byte
	Filename       string
	ContentType    string
	OwnerID        string
	TargetLanguage string
	SourceLanguage string
}

// Outcome is the result of a served upload. Persisted is false both for empty speech
// and for a failed insert; PersistErr tells the two apart.
type Outcome struct {
	Transcript     string
	TranslatedText string
	TargetLanguage string
	NoSpeech       bool
	Persisted      bool
	PersistErr     error
	Record         *entities.TranscriptionRecord
}

type UploadService interface {
	Upload(ctx context.Context, req UploadRequest) (Outcome, error)
}

// Deps are the collaborators of the upload pipeline. Archive and Publisher are optional.
type Deps struct {
	Transcriber stt.Transcriber
	Translator  translation.Translator
	Repository  repository.HistoryRepository
	Archive     storage.AudioArchive
	Publisher   Publisher
	Now         func() time.Time
}

type uploadService struct {
	deps Deps
}

func NewUploadService(deps Deps) UploadService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &uploadService{deps: deps}
}

func (s *uploadService) Upload(ctx context.Context, req UploadRequest) (Outcome, error) {
	logger := zerolog.Ctx(ctx).With().Str("user_id", req.OwnerID).Logger()
	enter := func(st stage) {
		logger.Debug().Str("stage", string(st)).Msg("upload pipeline")
	}
	fail := func(st stage, err error) (Outcome, error) {
		logger.Error().Err(err).Str("stage", string(stageFailed)).Str("from", string(st)).Msg("upload failed")
		return Outcome{}, err
	}

	enter(stageValidating)
	if len(req.Audio) == 0 {
		return fail(stageValidating, ErrMissingAudio)
	}
	if req.OwnerID == "" {
		return fail(stageValidating, ErrMissingOwner)
	}
	if req.TargetLanguage == "" {
		req.TargetLanguage = constant.DefaultTargetLanguage
	}
	if req.SourceLanguage == "" {
		req.SourceLanguage = constant.DefaultSourceLanguage
	}

	enter(stageTranscribing)
	result, err := s.deps.Transcriber.Transcribe(ctx, req.Audio, req.SourceLanguage)
	if err != nil {
		return fail(stageTranscribing, errors.Join(ErrTranscription, err))
	}
	if result.NoSpeech {
		enter(stageEmptySpeech)
		logger.Info().Str("provider", s.deps.Transcriber.Name()).Msg("no speech detected")
		enter(stageResponding)
		return Outcome{
			Transcript: constant.NoSpeechTranscript,
			NoSpeech:   true,
		}, nil
	}
	logger.Info().Str("provider", s.deps.Transcriber.Name()).Int("chars", len(result.Transcript)).Float64("confidence", result.Confidence).Msg("transcribed")

	enter(stageTranslating)
	translated, err := s.deps.Translator.Translate(ctx, result.Transcript, req.TargetLanguage)
	if err != nil {
		return fail(stageTranslating, errors.Join(ErrTranslation, err))
	}

	outcome := Outcome{
		Transcript:     result.Transcript,
		TranslatedText: translated,
		TargetLanguage: req.TargetLanguage,
	}

	var audioKey string
	if s.deps.Archive != nil {
		enter(stageArchiving)
		audioKey, err = s.deps.Archive.Put(ctx, req.OwnerID, req.Filename, req.ContentType, req.Audio)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to archive audio")
			audioKey = ""
		}
	}

	enter(stagePersisting)
	record := &entities.TranscriptionRecord{
		OwnerID:        req.OwnerID,
		SourceText:     result.Transcript,
		TranslatedText: translated,
		TargetLanguage: req.TargetLanguage,
		AudioKey:       audioKey,
		CreatedAt:      s.deps.Now().UTC(),
	}
	if err := s.deps.Repository.Insert(ctx, record); err != nil {
		outcome.PersistErr = errors.Join(ErrPersistence, err)
		logger.Error().Err(outcome.PersistErr).Str("stage", string(stagePersisting)).Msg("transcription served without being saved")
	} else {
		outcome.Persisted = true
		outcome.Record = record
		logger.Info().Str("record_id", record.ID).Msg("transcription saved")
	}

	if outcome.Persisted && s.deps.Publisher != nil {
		enter(stagePublishing)
		msg := dto.TranscriptionCreatedMessage{
			ID:             record.ID,
			OwnerID:        record.OwnerID,
			TargetLanguage: record.TargetLanguage,
			AudioKey:       record.AudioKey,
			CreatedAt:      record.CreatedAt,
		}
		if err := s.deps.Publisher.Publish(ctx, msg); err != nil {
			logger.Warn().Err(err).Str("record_id", record.ID).Msg("failed to publish transcription event")
		}
	}

	enter(stageResponding)
	return outcome, nil
}
