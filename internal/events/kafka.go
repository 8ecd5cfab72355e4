package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"nyaya/internal/config"
	"nyaya/internal/domain"
	"nyaya/internal/port"
)

// EventCaseAnalyzed is the type of the event emitted after a case is stored.
const EventCaseAnalyzed = "case.analyzed"

// CaseAnalyzedEvent is the JSON payload published for a stored case.
type CaseAnalyzedEvent struct {
	EventID          string              `json:"event_id"`
	EventType        string              `json:"event_type"`
	CaseID           uuid.UUID           `json:"case_id"`
	SessionID        *uuid.UUID          `json:"session_id,omitempty"`
	Category         domain.Category     `json:"category"`
	ConfidenceScore  float64             `json:"confidence_score"`
	UrgencyLevel     domain.UrgencyLevel `json:"urgency_level"`
	DetectedLanguage string              `json:"detected_language"`
	SentimentLabel   string              `json:"sentiment_label"`
	Fallbacks        []string            `json:"fallbacks"`
	OccurredAt       time.Time           `json:"occurred_at"`
}

// MessageWriter abstracts kafka.Writer for testing.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes case events to a Kafka topic.
type KafkaPublisher struct {
	writer MessageWriter
	log    *zap.Logger
	now    func() time.Time
}

// NewKafkaPublisher connects a publisher to the configured brokers.
func NewKafkaPublisher(cfg *config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return NewKafkaPublisherWithWriter(writer, logger)
}

// NewKafkaPublisherWithWriter creates a publisher around an existing writer.
func NewKafkaPublisherWithWriter(w MessageWriter, logger *zap.Logger) *KafkaPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaPublisher{writer: w, log: logger.Named("events"), now: time.Now}
}

// PublishCaseAnalyzed writes one event keyed by case id so events for a case
// land on the same partition.
func (p *KafkaPublisher) PublishCaseAnalyzed(ctx context.Context, c *domain.Case) error {
	event := CaseAnalyzedEvent{
		EventID:          uuid.NewString(),
		EventType:        EventCaseAnalyzed,
		CaseID:           c.ID,
		SessionID:        c.SessionID,
		Category:         c.Category,
		ConfidenceScore:  c.ConfidenceScore,
		UrgencyLevel:     c.UrgencyLevel,
		DetectedLanguage: c.DetectedLanguage,
		SentimentLabel:   c.SentimentLabel,
		Fallbacks:        append([]string{}, c.Fallbacks...),
		OccurredAt:       p.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events.PublishCaseAnalyzed marshal: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(c.ID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventCaseAnalyzed)},
		},
		Time: event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events.PublishCaseAnalyzed: %w", err)
	}
	p.log.Debug("published case event",
		zap.String("case_id", c.ID.String()),
		zap.String("event_id", event.EventID))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishCaseAnalyzed(context.Context, *domain.Case) error { return nil }

// NewPublisher returns a Kafka publisher when brokers are configured and a
// NoopPublisher otherwise.
func NewPublisher(cfg *config.KafkaConfig, logger *zap.Logger) port.CaseEventPublisher {
	if len(cfg.Brokers) == 0 {
		return NoopPublisher{}
	}
	return NewKafkaPublisher(cfg, logger)
}
