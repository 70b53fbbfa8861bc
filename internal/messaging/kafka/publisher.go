package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// EventPublisher публикует доменные события в Kafka; topic совпадает с именем события.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher создаёт Kafka-реализацию domain.EventPublisher.
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

func (p *EventPublisher) Publish(ctx context.Context, event string, key string, payload []byte) error {
	if p == nil || p.producer == nil {
		return errProducerNotInitialized
	}
	if event == "" {
		return errors.New("event name is required")
	}
	if !json.Valid(payload) {
		return fmt.Errorf("event %s: payload is not valid json", event)
	}
	// SyncProducer не принимает context, поэтому проверяем отмену до отправки.
	if err := ctx.Err(); err != nil {
		return err
	}

	return p.producer.PublishEvent(event, key, NewEnvelope(event, payload))
}

// Check делегирует проверку состояния producer.
func (p *EventPublisher) Check(_ context.Context) error {
	if p == nil {
		return errProducerNotInitialized
	}
	return p.producer.Check()
}

// NoopPublisher используется, когда Kafka не настроена: события только логируются.
type NoopPublisher struct {
	logger *log.Entry
}

// NewNoopPublisher создаёт publisher, который отбрасывает события.
func NewNoopPublisher(logger *log.Entry) *NoopPublisher {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &NoopPublisher{logger: logger.WithField("component", "noop-publisher")}
}

func (p *NoopPublisher) Publish(_ context.Context, event string, key string, payload []byte) error {
	p.logger.WithFields(log.Fields{
		"event": event,
		"key":   key,
		"bytes": len(payload),
	}).Debug("kafka is disabled, event dropped")
	return nil
}

var (
	_ domain.EventPublisher = (*EventPublisher)(nil)
	_ domain.EventPublisher = (*NoopPublisher)(nil)
)
