package kafka

import (
	"context"
	"time"

	"github.com/iwtcode/googolAdapter/internal/config"
	"github.com/iwtcode/googolAdapter/internal/interfaces"

	"github.com/segmentio/kafka-go"
)

type KafkaProducer struct {
	writer *kafka.Writer
}

// NewKafkaProducer создает новый экземпляр продюсера Kafka.
// При KAFKA_ENABLE=false возвращается продюсер, отбрасывающий сообщения.
func NewKafkaProducer(cfg *config.AppConfig) (interfaces.KafkaService, error) {
	if !cfg.Kafka.Enable {
		return NopProducer{}, nil
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Broker),
		Topic:        cfg.Kafka.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &KafkaProducer{writer: writer}, nil
}

// Produce отправляет сообщение в Kafka
func (p *KafkaProducer) Produce(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx,
		kafka.Message{
			Key:   key,
			Value: value,
		},
	)
}

// Close закрывает соединение с Kafka
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NopProducer используется, когда экспорт в Kafka выключен.
type NopProducer struct{}

func (NopProducer) Produce(context.Context, []byte, []byte) error { return nil }
func (NopProducer) Close() error                                  { return nil }
