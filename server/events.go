package server

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"speech-translate/config"
	"speech-translate/handler"
	"speech-translate/pkg/rabbitmq"
)

// RunEvents tails the transcription events queue until interrupted.
func RunEvents(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conn, err := config.NewRabbitMQConn(ctx, cfg.Queue)
	if err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("NewRabbitMQConn")
	}

	eventConsumer := rabbitmq.NewConsumer[handler.EventDependencies](conn, cfg.Queue, rabbitmq.TranscriptionEvents(cfg.Queue.ExchangeName), cfg.Server.Workers, handler.TranscriptionCreatedHandler)
	if err := eventConsumer.Consume(ctx, handler.EventDependencies{}); err != nil && !errors.Is(err, context.Canceled) {
		zerolog.Ctx(ctx).Error().Err(err).Msg("transcription events consumer error")
		return
	}

	zerolog.Ctx(ctx).Info().Msg("events worker stopped")
}
