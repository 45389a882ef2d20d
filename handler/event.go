package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cenkalti/backoff/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"speech-translate/dto"
)

// EventDependencies is what the events worker hands every delivery.
type EventDependencies struct {
	// Seen is called for every decoded event; nil only logs.
	Seen func(ctx context.Context, msg dto.TranscriptionCreatedMessage)
}

func TranscriptionCreatedHandler(ctx context.Context, msg amqp.Delivery, deps EventDependencies) error {
	var event dto.TranscriptionCreatedMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to unmarshal transcription event")
		return backoff.Permanent(err)
	}
	if event.ID == "" || event.OwnerID == "" {
		return backoff.Permanent(fmt.Errorf("transcription event without id or userId"))
	}

	zerolog.Ctx(ctx).Info().
		Str("record_id", event.ID).
		Str("user_id", event.OwnerID).
		Str("target_lang", event.TargetLanguage).
		Str("audio_key", event.AudioKey).
		Time("created_at", event.CreatedAt).
		Msg("received transcription event")

	if deps.Seen != nil {
		deps.Seen(ctx, event)
	}
	return nil
}
