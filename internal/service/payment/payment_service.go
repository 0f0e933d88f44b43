// Package payment debits accounts for unpaid reservations.
package payment

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

type PaymentUseCase interface {
	Pay(ctx context.Context, sess *session.Session, reservationID int64) (int64, error)
}

type EventPublisher interface {
	PublishReservation(ctx context.Context, event kafka.ReservationEvent)
}

type PaymentService struct {
	runner txn.Runner
	events EventPublisher
	logger *zap.Logger
}

func NewPaymentService(runner txn.Runner, events EventPublisher, logger *zap.Logger) *PaymentService {
	return &PaymentService{runner: runner, events: events, logger: logger}
}

// Pay debits the reservation price from the session user's account, marks
// the reservation paid and returns the remaining balance.
func (s *PaymentService) Pay(ctx context.Context, sess *session.Session, reservationID int64) (int64, error) {
	if !sess.LoggedIn {
		return 0, domain.ErrNotLoggedIn
	}
	username := sess.Username
	notFound := fmt.Errorf("%w %d under user: %s", domain.ErrReservationNotFound, reservationID, username)

	var (
		paid    domain.Reservation
		balance int64
	)
	err := s.runner.Run(ctx, txn.Op{Name: "pay", Failure: domain.ErrPaymentFailed}, func(ctx context.Context, tx repository.Tx) error {
		r, err := tx.Reservations().Get(ctx, reservationID, username)
		if errors.Is(err, repository.ErrNotFound) {
			return notFound
		}
		if err != nil {
			return err
		}
		if r.Paid {
			return notFound
		}

		account, err := tx.Accounts().Get(ctx, username)
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w %d: account %s is gone", domain.ErrPaymentFailed, reservationID, username)
		}
		if err != nil {
			return err
		}
		if account.Balance < r.Price {
			return &domain.InsufficientFundsError{Balance: account.Balance, Price: r.Price}
		}

		balance, err = tx.Accounts().AdjustBalance(ctx, username, -r.Price)
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return fmt.Errorf("%w %d", domain.ErrPaymentFailed, reservationID)
		}
		if err != nil {
			return err
		}

		err = tx.Reservations().MarkPaid(ctx, reservationID, username)
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return fmt.Errorf("%w %d", domain.ErrPaymentFailed, reservationID)
		}
		if err != nil {
			return err
		}

		paid = *r
		paid.Paid = true
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("reservation paid",
		zap.String("username", username),
		zap.Int64("reservation_id", reservationID),
		zap.Int64("price", paid.Price),
		zap.Int64("balance", balance),
	)
	if s.events != nil {
		s.events.PublishReservation(ctx, kafka.NewReservationEvent(kafka.EventReservationPaid, paid).WithBalance(balance))
	}
	return balance, nil
}

var _ PaymentUseCase = (*PaymentService)(nil)
