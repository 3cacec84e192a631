package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	GameNew      = "game:new"
	GameMove     = "game:move"
	GameFinished = "game:finished"
	GameUndo     = "game:undo"
	GameSaved    = "game:saved"
	GameLoaded   = "game:loaded"
)

type Event struct {
	ID        string         `json:"id"`
	Name      string         `json:"event"`
	Payload   map[string]any `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

func NewEvent(name string, payload map[string]any) Event {
	return Event{
		ID:        uuid.NewString(),
		Name:      name,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// Message is the kafka payload of the event, keyed by event name.
func (that Event) Message() (kafka.Message, error) {
	data, err := json.Marshal(that)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	return kafka.Message{Key: []byte(that.Name), Value: data, Time: that.Timestamp}, nil
}

// Producer publishes game events to kafka. A nil *Producer drops everything.
type Producer struct {
	logger *slog.Logger
	writer *kafka.Writer
}

func NewProducer(logger *slog.Logger, brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return nil
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		Async:                  true,
	}

	return &Producer{
		logger: logger.With("component", "events"),
		writer: writer,
	}
}

func (that *Producer) Publish(ctx context.Context, name string, payload map[string]any) {
	if that == nil || that.writer == nil {
		return
	}

	msg, err := NewEvent(name, payload).Message()
	if err != nil {
		that.logger.Error("could not build event", "event", name, "error", err)
		return
	}

	if err = that.writer.WriteMessages(ctx, msg); err != nil {
		that.logger.Error("kafka publish failed", "event", name, "error", err)
	}
}

func (that *Producer) Close() error {
	if that == nil || that.writer == nil {
		return nil
	}

	if err := that.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}

	return nil
}
