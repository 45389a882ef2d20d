package rabbitmq

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"speech-translate/config"
)

type Consumer[T any] interface {
	Consume(ctx context.Context, dependencies T) error
}

// Handler processes one delivery. Returning a *backoff.PermanentError skips the retries.
type Handler[T any] func(ctx context.Context, msg amqp.Delivery, dependencies T) error

type consumer[T any] struct {
	conn       *amqp.Connection
	cfg        *config.RabbitMQ
	binding    Binding
	handler    Handler[T]
	numWorkers int
	maxTries   uint
}

func (c consumer[T]) Consume(ctx context.Context, dependencies T) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := declare(ctx, ch, c.cfg.Kind, c.binding); err != nil {
		return err
	}

	queueName := c.binding.Queue
	err = ch.Qos(c.numWorkers, 0, false)
	if err != nil {
		zerolog.Ctx(ctx).Error().Str("queue", queueName).Msg("failed to set QoS")
		return err
	}

	deliveries, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		zerolog.Ctx(ctx).Error().Str("queue", queueName).Msg("failed to consume queue")
		return err
	}

	zerolog.Ctx(ctx).Info().
		Str("queue", queueName).
		Str("exchange", c.binding.Exchange).
		Str("routing_key", c.binding.RoutingKey).
		Int("workers", c.numWorkers).
		Msg("consumer started")

	jobs := make(chan amqp.Delivery, c.numWorkers)
	var wg sync.WaitGroup
	for i := 1; i <= c.numWorkers; i++ {
		wg.Add(1)
		go func(workerId int) {
			defer wg.Done()
			for msg := range jobs {
				c.handle(ctx, workerId, deliveryAck{msg}, dependencies)
			}
		}(i)
	}

	for {
		select {
		case delivery, ok := <-deliveries:
			if !ok {
				close(jobs)
				wg.Wait()
				return nil
			}

			jobs <- delivery
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		}
	}
}

func (c consumer[T]) handle(ctx context.Context, workerId int, msg acknowledger, dependencies T) {
	delivery := msg.delivery()
	operation := func() (struct{}, error) {
		return struct{}{}, c.handler(ctx, delivery, dependencies)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = 10 * time.Second

	_, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(c.maxTries))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int("worker_id", workerId).Str("message_id", delivery.MessageId).Msg("failed to handle message")
		if nackErr := msg.Nack(false, false); nackErr != nil {
			zerolog.Ctx(ctx).Error().Err(nackErr).Msg("failed to nack message to DLQ")
		}
		return
	}
	if ackErr := msg.Ack(false); ackErr != nil {
		zerolog.Ctx(ctx).Error().Err(ackErr).Msg("failed to acknowledge message")
	}
}

// acknowledger is the part of amqp.Delivery the worker needs.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
	delivery() amqp.Delivery
}

type deliveryAck struct {
	amqp.Delivery
}

func (d deliveryAck) delivery() amqp.Delivery {
	return d.Delivery
}

func declare(ctx context.Context, ch *amqp.Channel, kind string, b Binding) error {
	err := ch.ExchangeDeclare(b.Exchange, kind, true, false, false, false, nil)
	if err != nil {
		zerolog.Ctx(ctx).Error().Str("exchange", b.Exchange).Msg("failed to declare exchange")
		return err
	}

	if b.DLX != "" {
		err = ch.ExchangeDeclare(b.DLX, kind, true, false, false, false, nil)
		if err != nil {
			zerolog.Ctx(ctx).Error().Str("exchange", b.DLX).Msg("failed to declare dlx")
			return err
		}

		dlq, err := ch.QueueDeclare(b.DLQ, true, false, false, false, nil)
		if err != nil {
			zerolog.Ctx(ctx).Error().Str("queue", b.DLQ).Msg("failed to declare dlq")
			return err
		}

		err = ch.QueueBind(dlq.Name, b.dlqRoutingKey(), b.DLX, false, nil)
		if err != nil {
			zerolog.Ctx(ctx).Error().Str("queue", b.DLQ).Msg("failed to bind dlq")
			return err
		}
	}

	q, err := ch.QueueDeclare(b.Queue, true, false, false, false, b.queueArgs())
	if err != nil {
		zerolog.Ctx(ctx).Error().Str("queue", b.Queue).Msg("failed to declare queue")
		return err
	}

	err = ch.QueueBind(q.Name, b.RoutingKey, b.Exchange, false, nil)
	if err != nil {
		zerolog.Ctx(ctx).Error().Str("queue", b.Queue).Msg("failed to bind queue")
		return err
	}
	return nil
}

func NewConsumer[T any](
	conn *amqp.Connection,
	cfg *config.RabbitMQ,
	binding Binding,
	numWorkers int,
	handler Handler[T],
) Consumer[T] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &consumer[T]{
		conn:       conn,
		cfg:        cfg,
		binding:    binding,
		handler:    handler,
		numWorkers: numWorkers,
		maxTries:   5,
	}
}
