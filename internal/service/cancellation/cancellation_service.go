// Package cancellation removes reservations, refunding paid ones and
// releasing their booked seats.
package cancellation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/kafka"
	"github.com/Domenick1991/flightres/internal/repository"
	"github.com/Domenick1991/flightres/internal/session"
	"github.com/Domenick1991/flightres/internal/txn"
	"go.uber.org/zap"
)

type CancellationUseCase interface {
	Cancel(ctx context.Context, sess *session.Session, reservationID int64) error
}

type EventPublisher interface {
	PublishReservation(ctx context.Context, event kafka.ReservationEvent)
}

type CancellationService struct {
	runner txn.Runner
	events EventPublisher
	logger *zap.Logger
}

func NewCancellationService(runner txn.Runner, events EventPublisher, logger *zap.Logger) *CancellationService {
	return &CancellationService{runner: runner, events: events, logger: logger}
}

func (s *CancellationService) Cancel(ctx context.Context, sess *session.Session, reservationID int64) error {
	if !sess.LoggedIn {
		return domain.ErrNotLoggedIn
	}
	username := sess.Username
	failed := fmt.Errorf("%w %d", domain.ErrCancellationFailed, reservationID)

	var (
		canceled domain.Reservation
		refunded int64
	)
	err := s.runner.Run(ctx, txn.Op{Name: "cancel", Failure: domain.ErrCancellationFailed}, func(ctx context.Context, tx repository.Tx) error {
		refunded = 0

		r, err := tx.Reservations().Get(ctx, reservationID, username)
		if errors.Is(err, repository.ErrNotFound) {
			return failed
		}
		if err != nil {
			return err
		}

		if r.Paid {
			_, err := tx.Accounts().AdjustBalance(ctx, username, r.Price)
			if errors.Is(err, repository.ErrNoRowsAffected) {
				return failed
			}
			if err != nil {
				return fmt.Errorf("refund: %w", err)
			}
			refunded = r.Price
		}

		err = tx.Reservations().Delete(ctx, reservationID, username)
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return failed
		}
		if err != nil {
			return fmt.Errorf("delete reservation: %w", err)
		}

		for _, fid := range r.FlightIDs() {
			if err := release(ctx, tx.Capacities(), fid); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return failed
				}
				return err
			}
		}

		canceled = *r
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("reservation canceled",
		zap.String("username", username),
		zap.Int64("reservation_id", reservationID),
		zap.Int64("refunded", refunded),
	)
	if s.events != nil {
		event := kafka.NewReservationEvent(kafka.EventReservationCanceled, canceled)
		event.Refunded = refunded
		s.events.PublishReservation(ctx, event)
	}
	return nil
}

// release frees one booked seat of a flight and drops the counter once no
// seat is booked.
func release(ctx context.Context, capacities repository.CapacityRepository, flightID int64) error {
	left, err := capacities.Decrement(ctx, flightID)
	if err != nil {
		return fmt.Errorf("decrement booked seats of flight %d: %w", flightID, err)
	}
	if left > 0 {
		return nil
	}
	if err := capacities.Remove(ctx, flightID); err != nil {
		return fmt.Errorf("remove booked seats of flight %d: %w", flightID, err)
	}
	return nil
}

var _ CancellationUseCase = (*CancellationService)(nil)
