// Package kafka publishes claim lifecycle events to the event stream.
package kafka

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	"github.com/SolBenven/proyecto-final/internal/config"
	"github.com/SolBenven/proyecto-final/internal/domain/claim"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

// Producer implements claim.EventPublisher on a kafka topic.  Events for the
// same claim share a key so consumers see them in order.
type Producer struct {
	writer *kafka.Writer
	log    logging.Logger
}

// NewProducer builds the kafka event producer.
func NewProducer(cfg config.KafkaConfig, log logging.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		MaxAttempts:  cfg.ProducerRetries,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequireOne,
	}
	return &Producer{writer: writer, log: log}
}

// Publish sends one event.  Callers treat failures as non-fatal.
func (p *Producer) Publish(ctx context.Context, ev claim.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode claim event")
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.ClaimID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to publish claim event")
	}

	p.log.Debug("claim event published",
		logging.String("type", string(ev.Type)),
		logging.Int64("claim_id", ev.ClaimID))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

var _ claim.EventPublisher = (*Producer)(nil)
