// Package email turns reservation events into customer notifications.
package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightres/internal/kafka"
	"go.uber.org/zap"
)

type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Info("send email",
		zap.String("to", event.Username),
		zap.String("type", event.Type),
		zap.Int64("reservation_id", event.ReservationID),
		zap.String("body", Compose(event)),
	)
	return nil
}

// Compose renders the notification text for an event.
func Compose(event kafka.ReservationEvent) string {
	switch event.Type {
	case kafka.EventReservationBooked:
		return fmt.Sprintf("Reservation %d for day %d is booked. Amount due: %d.", event.ReservationID, event.DayOfMonth, event.Price)
	case kafka.EventReservationPaid:
		msg := fmt.Sprintf("Reservation %d is paid.", event.ReservationID)
		if event.Balance != nil {
			msg += fmt.Sprintf(" Remaining balance: %d.", *event.Balance)
		}
		return msg
	case kafka.EventReservationCanceled:
		if event.Refunded > 0 {
			return fmt.Sprintf("Reservation %d is canceled. Refunded: %d.", event.ReservationID, event.Refunded)
		}
		return fmt.Sprintf("Reservation %d is canceled.", event.ReservationID)
	default:
		return fmt.Sprintf("Reservation %d changed: %s.", event.ReservationID, event.Type)
	}
}
