package rabbitmq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"speech-translate/config"
	"speech-translate/dto"
)

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends transcription events to the transcription exchange.
type Publisher struct {
	mu         sync.Mutex
	ch         channel
	exchange   string
	routingKey string
	declared   bool
	kind       string
}

func NewPublisher(conn *amqp.Connection, cfg *config.RabbitMQ) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	return newPublisher(ch, cfg.Kind, TranscriptionEvents(cfg.ExchangeName)), nil
}

func newPublisher(ch channel, kind string, b Binding) *Publisher {
	return &Publisher{
		ch:         ch,
		exchange:   b.Exchange,
		routingKey: b.RoutingKey,
		kind:       kind,
	}
}

func (p *Publisher) Publish(ctx context.Context, msg dto.TranscriptionCreatedMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.declared {
		if err := p.ch.ExchangeDeclare(p.exchange, p.kind, true, false, false, false, nil); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("exchange", p.exchange).Msg("failed to declare exchange")
			return err
		}
		p.declared = true
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Str("exchange", p.exchange).Str("routing_key", p.routingKey).Str("record_id", msg.ID).Msg("event published")
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Close()
}
