package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"parkly/internal/bookings"
	"parkly/internal/shared/config"

	"github.com/IBM/sarama"
)

// BookingEventProducer publishes booking lifecycle events to Kafka.
// It satisfies the publisher hook the booking service exposes.
type BookingEventProducer interface {
	PublishBookingEvent(ctx context.Context, eventType string, booking *bookings.Booking) error
	Close() error
	HealthCheck(ctx context.Context) error
}

// KafkaProducerConfig contains configuration for the booking event producer
type KafkaProducerConfig struct {
	Brokers          []string
	BookingTopic     string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// ProducerConfigFromApp maps the application Kafka config onto producer defaults
func ProducerConfigFromApp(cfg config.KafkaConfig) *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          cfg.Brokers,
		BookingTopic:     cfg.BookingTopic,
		RetryMax:         3,
		TimeoutMs:        10000,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000,
	}
}

// KafkaBookingEventProducer handles publishing booking events to Kafka
type KafkaBookingEventProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaBookingEventProducer creates a new Kafka booking event producer
func NewKafkaBookingEventProducer(config *KafkaProducerConfig) (BookingEventProducer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps per-spot event ordering
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("📤 Kafka booking event producer created successfully")
	return &KafkaBookingEventProducer{
		producer: producer,
		config:   config,
	}, nil
}

// PublishBookingEvent publishes a single booking lifecycle event to Kafka
func (kbp *KafkaBookingEventProducer) PublishBookingEvent(ctx context.Context, eventType string, booking *bookings.Booking) error {
	event := NewBookingEvent(eventType, booking)

	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     kbp.config.BookingTopic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   kbp.createHeaders(event),
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := kbp.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send booking event to Kafka: %w", err)
	}

	log.Printf("📤 Booking event published - Topic: %s, Partition: %d, Offset: %d, Type: %s, Booking: %s",
		kbp.config.BookingTopic, partition, offset, event.Type, event.BookingID)

	return nil
}

// createHeaders creates Kafka headers for booking events
func (kbp *KafkaBookingEventProducer) createHeaders(event *BookingEvent) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(event.ID.String())},
		{Key: []byte("event_type"), Value: []byte(event.Type)},
		{Key: []byte("booking_id"), Value: []byte(event.BookingID.String())},
		{Key: []byte("spot_id"), Value: []byte(event.SpotID.String())},
		{Key: []byte("requester_id"), Value: []byte(event.RequesterID.String())},
		{Key: []byte("version"), Value: []byte("1.0")},
		{Key: []byte("producer"), Value: []byte("parkly-bookings")},
		{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
	}
}

// Close closes the Kafka producer
func (kbp *KafkaBookingEventProducer) Close() error {
	if kbp.producer != nil {
		err := kbp.producer.Close()
		if err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		log.Printf("📤 Kafka booking event producer closed")
	}
	return nil
}

// HealthCheck validates the producer is usable without sending traffic
func (kbp *KafkaBookingEventProducer) HealthCheck(ctx context.Context) error {
	if kbp.producer == nil {
		return fmt.Errorf("health check failed - producer is nil")
	}

	if kbp.config.BookingTopic == "" {
		return fmt.Errorf("health check failed - booking topic not configured")
	}

	log.Printf("✅ Kafka booking event producer health check passed")
	return nil
}
