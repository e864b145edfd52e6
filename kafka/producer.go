package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"newswire/types"
)

// Producer publishes approval events. Messages are keyed by article ID so
// all transitions of one article land on the same partition in order.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer creates a synchronous producer. Sync is deliberate: the write
// path needs to know the event is durable before treating dispatch as
// handed off, otherwise a crash between save and flush would lose the
// notification entirely.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("creating producer: %w", err)
	}

	return &Producer{producer: producer, topic: topic}, nil
}

// PublishApproval sends one approval event.
func (p *Producer) PublishApproval(event types.ApprovalEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal approval event: %w", err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.ArticleID),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("publish approval event for %s: %w", event.ArticleID, err)
	}
	return nil
}

// Close shuts the producer down.
func (p *Producer) Close() error {
	return p.producer.Close()
}
