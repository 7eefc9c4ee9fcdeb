package signals

import (
	"context"
	"fmt"
	"time"

	"spreadedge/pkg/logger"
	"spreadedge/pkg/metrics"

	"github.com/IBM/sarama"
)

// Publisher writes generated signals to the signal feed
type Publisher interface {
	Publish(ctx context.Context, batch []TradingSignal) error
	Close() error
}

// ProducerConfig contains configuration for the Kafka signal producer
type ProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	Timeout          time.Duration
	RequiredAcks     sarama.RequiredAcks
	Compression      sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultProducerConfig returns a producer for the trading-signals topic that
// waits for every in-sync replica
func DefaultProducerConfig(brokers []string, topic string) ProducerConfig {
	return ProducerConfig{
		Brokers:          brokers,
		Topic:            topic,
		RetryMax:         3,
		Timeout:          10 * time.Second,
		RequiredAcks:     sarama.WaitForAll,
		Compression:      sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// SaramaConfig builds the client configuration for cfg
func (cfg ProducerConfig) SaramaConfig() *sarama.Config {
	sc := sarama.NewConfig()
	sc.ClientID = "spreadedge-signals"

	sc.Producer.Return.Successes = true
	sc.Producer.Return.Errors = true
	sc.Producer.RequiredAcks = cfg.RequiredAcks
	sc.Producer.Compression = cfg.Compression
	sc.Producer.Retry.Max = cfg.RetryMax
	sc.Producer.Timeout = cfg.Timeout
	sc.Producer.Idempotent = cfg.IdempotentWrites
	sc.Producer.MaxMessageBytes = cfg.MaxMessageBytes
	if cfg.IdempotentWrites {
		sc.Net.MaxOpenRequests = 1
	}

	// Same symbol, same partition
	sc.Producer.Partitioner = sarama.NewHashPartitioner
	return sc
}

// KafkaPublisher publishes each batch with one SendMessages call
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewKafkaPublisher dials the brokers in cfg
func NewKafkaPublisher(cfg ProducerConfig, log *logger.Logger) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, cfg.SaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Info("Kafka signal producer created", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return NewKafkaPublisherWithProducer(producer, cfg.Topic, log), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, batch []TradingSignal) error {
	if len(batch) == 0 {
		return nil
	}

	messages := make([]*sarama.ProducerMessage, 0, len(batch))
	now := time.Now()
	for _, signal := range batch {
		value, err := signal.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to marshal signal %s: %w", signal.ID, err)
		}

		messages = append(messages, &sarama.ProducerMessage{
			Topic:     p.topic,
			Key:       sarama.StringEncoder(signal.PartitionKey()),
			Value:     sarama.ByteEncoder(value),
			Headers:   headers(signal),
			Timestamp: now,
		})
	}

	if err := p.producer.SendMessages(messages); err != nil {
		metrics.IncSignalsPublished("error")
		return fmt.Errorf("failed to send %d signals to Kafka: %w", len(messages), err)
	}

	metrics.IncSignalsPublished("ok")
	p.log.DebugContext(ctx, "Signals published", "topic", p.topic, "count", len(messages))
	return nil
}

func (p *KafkaPublisher) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

func headers(signal TradingSignal) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("signal_id"), Value: []byte(signal.ID)},
		{Key: []byte("signal_type"), Value: []byte(signal.SignalType)},
		{Key: []byte("symbol"), Value: []byte(signal.Symbol)},
		{Key: []byte("producer"), Value: []byte("spreadedge-signals")},
	}
}

// NopPublisher drops every batch. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, []TradingSignal) error { return nil }

func (NopPublisher) Close() error { return nil }
