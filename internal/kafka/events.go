package kafka

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/segmentio/kafka-go"
)

const (
	EventReservationBooked   = "reservation_booked"
	EventReservationPaid     = "reservation_paid"
	EventReservationCanceled = "reservation_canceled"
)

// ReservationEvent is published after a reservation change has committed.
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	Username      string    `json:"username"`
	DayOfMonth    int       `json:"day_of_month"`
	Price         int64     `json:"price"`
	Paid          bool      `json:"paid"`
	FlightIDs     []int64   `json:"flight_ids"`
	Refunded      int64     `json:"refunded,omitempty"`
	Balance       *int64    `json:"balance,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewReservationEvent(eventType string, r domain.Reservation) ReservationEvent {
	return ReservationEvent{
		Type:          eventType,
		ReservationID: r.ID,
		Username:      r.Username,
		DayOfMonth:    r.DayOfMonth,
		Price:         r.Price,
		Paid:          r.Paid,
		FlightIDs:     r.FlightIDs(),
		OccurredAt:    time.Now().UTC(),
	}
}

// WithBalance records the account balance after the change.
func (e ReservationEvent) WithBalance(balance int64) ReservationEvent {
	e.Balance = &balance
	return e
}

// Key partitions events by reservation so a consumer sees them in order.
func (e ReservationEvent) Key() string {
	return strconv.FormatInt(e.ReservationID, 10)
}

func DecodeReservationEvent(msg kafka.Message) (ReservationEvent, error) {
	var event ReservationEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return ReservationEvent{}, fmt.Errorf("decode reservation event at offset %d: %w", msg.Offset, err)
	}
	if event.Type == "" {
		return ReservationEvent{}, fmt.Errorf("reservation event at offset %d has no type", msg.Offset)
	}
	return event, nil
}
