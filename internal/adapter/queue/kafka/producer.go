// Package kafka publishes flagged-review events for the external admin
// surface to consume.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/zawlinnphyo/wordstake/internal/domain"
)

// Producer wraps a Kafka producer and implements domain.ReviewPublisher.
// Review events are advisory: the audit log is the durable record, so the
// producer favors simplicity over exactly-once delivery.
type Producer struct {
	client *kgo.Client
	topic  string
}

// NewProducer constructs a Producer and makes sure the topic exists.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no seed brokers provided")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.RequestRetries(5),
		kgo.ProducerBatchMaxBytes(1000000),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}

	if err := createTopicIfNotExists(context.Background(), client, topic, 1, 1); err != nil {
		slog.Warn("failed to create topic, it may already exist",
			slog.String("topic", topic),
			slog.Any("error", err))
	}
	return &Producer{client: client, topic: topic}, nil
}

// PublishFlagged sends one review event, keyed by task id so a task's
// events stay ordered within a partition.
func (p *Producer) PublishFlagged(ctx domain.Context, ev domain.ReviewEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal review event: %w", err)
	}
	rec := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(ev.TaskID),
		Value: b,
	}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce review event: %w", err)
	}
	slog.Debug("review event published",
		slog.String("topic", p.topic),
		slog.String("task_id", ev.TaskID),
		slog.Int("day", ev.DayNumber))
	return nil
}

// Close flushes and closes the underlying client.
func (p *Producer) Close() {
	p.client.Close()
}
