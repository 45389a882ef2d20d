package rabbitmq

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"speech-translate/constant"
)

// Binding names the exchange a queue listens on. DLX and DLQ are optional.
type Binding struct {
	Exchange   string
	Queue      string
	RoutingKey string
	DLX        string
	DLQ        string
}

// TranscriptionEvents is the binding shared by the publisher and the events worker.
// exchange falls back to the default transcription exchange when empty.
func TranscriptionEvents(exchange string) Binding {
	if exchange == "" {
		exchange = constant.TranscriptionExchange
	}
	return Binding{
		Exchange:   exchange,
		Queue:      constant.TranscriptionQueue,
		RoutingKey: constant.TranscriptionCreatedKey,
		DLX:        exchange + "_dlx",
		DLQ:        constant.TranscriptionQueue + "_dlq",
	}
}

func (b Binding) dlqRoutingKey() string {
	return "dlq." + b.RoutingKey
}

func (b Binding) queueArgs() amqp.Table {
	if b.DLX == "" {
		return nil
	}
	return amqp.Table{
		"x-dead-letter-exchange":    b.DLX,
		"x-dead-letter-routing-key": b.dlqRoutingKey(),
	}
}
