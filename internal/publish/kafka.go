package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/lzjever/webhook-events/internal/core"
)

// Producer is the subset of *kgo.Client used by Kafka.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// Kafka publishes events as JSON records keyed by request id.
type Kafka struct {
	client Producer
	topic  string
}

// NewKafka connects a producer to brokers. Records not delivered within
// deliveryTimeout fail instead of being retried indefinitely.
func NewKafka(brokers []string, topic string, deliveryTimeout time.Duration) (*Kafka, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	}
	if deliveryTimeout > 0 {
		opts = append(opts, kgo.RecordDeliveryTimeout(deliveryTimeout))
	}
	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return NewKafkaWithProducer(client, topic), nil
}

func NewKafkaWithProducer(p Producer, topic string) *Kafka {
	return &Kafka{client: p, topic: topic}
}

func (k *Kafka) Publish(ctx context.Context, ev core.StoredEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(ev.RequestID),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "action", Value: []byte(ev.Action)},
		},
	}
	if err := k.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", k.topic, err)
	}
	return nil
}

func (k *Kafka) Close() {
	k.client.Close()
}
