// Package booking turns itineraries of the last search into reservations
// and keeps the booked-seat counters of their flights.
package booking

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/kafka"
	"github.com/Domenick1991/flightres/internal/repository"
	"github.com/Domenick1991/flightres/internal/session"
	"github.com/Domenick1991/flightres/internal/txn"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	Book(ctx context.Context, sess *session.Session, itineraryIndex int) (int64, error)
	Reservations(ctx context.Context, sess *session.Session) ([]domain.Reservation, error)
}

type EventPublisher interface {
	PublishReservation(ctx context.Context, event kafka.ReservationEvent)
}

type BookingService struct {
	runner txn.Runner
	events EventPublisher
	logger *zap.Logger
}

type BookingServiceOption func(*BookingService)

func WithEvents(events EventPublisher) BookingServiceOption {
	return func(s *BookingService) {
		s.events = events
	}
}

func WithLogger(l *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = l
	}
}

func NewBookingService(runner txn.Runner, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		runner: runner,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Book reserves the itinerary at itineraryIndex of the session's last
// search and returns the new reservation id.
func (s *BookingService) Book(ctx context.Context, sess *session.Session, itineraryIndex int) (int64, error) {
	if !sess.LoggedIn {
		return 0, domain.ErrNotLoggedIn
	}
	it, ok := sess.Itinerary(itineraryIndex)
	if !ok {
		return 0, fmt.Errorf("%w %d", domain.ErrInvalidItinerary, itineraryIndex)
	}
	if it.Full {
		return 0, domain.ErrUnavailable
	}

	var booked *domain.Reservation
	err := s.runner.Run(ctx, txn.Op{Name: "book", Failure: domain.ErrBookingFailed}, func(ctx context.Context, tx repository.Tx) error {
		taken, err := tx.Reservations().ExistsOnDay(ctx, sess.Username, it.DayOfMonth)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrDuplicateDayBooking
		}

		r := domain.NewReservation(sess.Username, it)
		if err := tx.Reservations().Create(ctx, r); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}

		for _, f := range it.Flights() {
			count, err := tx.Capacities().Increment(ctx, f.ID)
			if err != nil {
				return fmt.Errorf("increment booked seats of flight %d: %w", f.ID, err)
			}
			if count > f.Capacity {
				return domain.ErrUnavailable
			}
		}

		booked = r
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("reservation booked",
		zap.String("username", booked.Username),
		zap.Int64("reservation_id", booked.ID),
		zap.Int("day", booked.DayOfMonth),
	)
	s.publish(ctx, kafka.NewReservationEvent(kafka.EventReservationBooked, *booked))
	return booked.ID, nil
}

// Reservations lists the reservations of the logged-in user by id.
func (s *BookingService) Reservations(ctx context.Context, sess *session.Session) ([]domain.Reservation, error) {
	if !sess.LoggedIn {
		return nil, domain.ErrNotLoggedIn
	}

	var list []domain.Reservation
	err := s.runner.Run(ctx, txn.Op{Name: "reservations", Failure: domain.ErrReservationsFailed}, func(ctx context.Context, tx repository.Tx) error {
		var err error
		list, err = tx.Reservations().ListByUser(ctx, sess.Username)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNoReservations
	}
	return list, nil
}

func (s *BookingService) publish(ctx context.Context, event kafka.ReservationEvent) {
	if s.events == nil {
		return
	}
	s.events.PublishReservation(ctx, event)
}

var _ BookingUseCase = (*BookingService)(nil)
