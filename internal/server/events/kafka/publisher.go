// Package kafka publishes exchange events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"github.com/vkazakov/cryptoexchange/internal/server/models"
)

type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher builds a Publisher writing JSON-encoded events to topic on
// the given brokers. Messages are keyed by login so all adjustments of one
// account land in one partition, in order.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, event models.BalanceAdjusted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Login),
		Value: data,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
