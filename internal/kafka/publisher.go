package kafka

import (
	"context"

	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

// ReservationEvents publishes reservation events to the reservation topic
// and mirrors them to the notifications topic when one is configured.
// Publishing is best effort: failures are logged, never returned.
type ReservationEvents struct {
	publisher          Publisher
	topic              string
	notificationsTopic string
	logger             *zap.Logger
}

func NewReservationEvents(publisher Publisher, topic, notificationsTopic string, logger *zap.Logger) *ReservationEvents {
	return &ReservationEvents{
		publisher:          publisher,
		topic:              topic,
		notificationsTopic: notificationsTopic,
		logger:             logger,
	}
}

func (r *ReservationEvents) PublishReservation(ctx context.Context, event ReservationEvent) {
	if r == nil || r.publisher == nil {
		return
	}
	for _, topic := range []string{r.topic, r.notificationsTopic} {
		if topic == "" {
			continue
		}
		if err := r.publisher.Publish(ctx, topic, event.Key(), event); err != nil {
			r.logger.Warn("failed to publish reservation event",
				zap.String("topic", topic),
				zap.String("type", event.Type),
				zap.Int64("reservation_id", event.ReservationID),
				zap.Error(err),
			)
		}
	}
}
