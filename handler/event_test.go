package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"speech-translate/dto"
)

func TestTranscriptionCreatedHandler(t *testing.T) {
	var seen []dto.TranscriptionCreatedMessage
	deps := EventDependencies{Seen: func(ctx context.Context, msg dto.TranscriptionCreatedMessage) {
		seen = append(seen, msg)
	}}

	body := []byte(`{"id":"r1","userId":"u1","targetLang":"hi","createdAt":"2024-06-01T00:00:00Z"}`)
	if err := TranscriptionCreatedHandler(context.Background(), amqp.Delivery{Body: body}, deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seen) != 1 || seen[0].ID != "r1" || seen[0].OwnerID != "u1" || !seen[0].CreatedAt.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected events: %+v", seen)
	}
}

func TestTranscriptionCreatedHandler_Permanent(t *testing.T) {
	for _, body := range []string{`not json`, `{"id":"r1"}`} {
		err := TranscriptionCreatedHandler(context.Background(), amqp.Delivery{Body: []byte(body)}, EventDependencies{})
		var permanent *backoff.PermanentError
		if !errors.As(err, &permanent) {
			t.Fatalf("body %s: expected permanent error, got %v", body, err)
		}
	}
}
