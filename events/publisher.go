// Package events is the asynchronous side-channel toward the job queue.
// Publishing is fire-and-forget: enqueue failures are logged and never fail
// the request that triggered them.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Publisher notifies downstream consumers of place lifecycle events.
type Publisher interface {
	PlaceUpserted(ctx context.Context, placeID string)
}

type placeUpsertedEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	PlaceID    string    `json:"place_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// KafkaPublisher writes place events to a kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    zerolog.Logger
}

func NewKafkaPublisher(writer *kafka.Writer, log zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, log: log}
}

func (p *KafkaPublisher) PlaceUpserted(ctx context.Context, placeID string) {
	event := placeUpsertedEvent{
		EventID:    uuid.NewString(),
		Type:       "place.upserted",
		PlaceID:    placeID,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Str("place_id", placeID).Msg("failed to marshal place event")
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(placeID),
		Value: payload,
	})
	if err != nil {
		p.log.Error().Err(err).Str("place_id", placeID).Msg("failed to enqueue place event")
	}
}

// NopPublisher drops all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PlaceUpserted(context.Context, string) {}
