// Package flights implements itinerary search: direct and one-stop
// flights, remaining capacity per leg, and a deterministic ranking.
package flights

import (
	"context"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/repository"
	"github.com/Domenick1991/flightres/internal/session"
	"github.com/Domenick1991/flightres/internal/txn"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	Search(ctx context.Context, sess *session.Session, q Query) ([]domain.Itinerary, error)
}

type Query struct {
	Origin     string
	Dest       string
	DirectOnly bool
	DayOfMonth int
	MaxResults int
}

type FlightService struct {
	runner txn.Runner
	logger *zap.Logger
}

func NewFlightService(runner txn.Runner, logger *zap.Logger) *FlightService {
	return &FlightService{runner: runner, logger: logger}
}

// Search replaces the session's itinerary cache with the ranked result of
// q. The cache is emptied when the search fails or finds nothing.
func (s *FlightService) Search(ctx context.Context, sess *session.Session, q Query) ([]domain.Itinerary, error) {
	sess.ReplaceItineraries(nil)
	if q.MaxResults <= 0 || q.Origin == "" || q.Dest == "" {
		return nil, domain.ErrInvalidArgument
	}

	var result []domain.Itinerary
	err := s.runner.Run(ctx, txn.Op{Name: "search", Failure: domain.ErrSearchFailed}, func(ctx context.Context, tx repository.Tx) error {
		direct, err := s.direct(ctx, tx, q)
		if err != nil {
			return err
		}

		var oneStop []domain.Itinerary
		if !q.DirectOnly && len(direct) < q.MaxResults {
			oneStop, err = s.oneStop(ctx, tx, q, q.MaxResults-len(direct))
			if err != nil {
				return err
			}
		}

		result = Merge(direct, oneStop)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range result {
		result[i].Render(i)
	}
	sess.ReplaceItineraries(result)

	s.logger.Debug("search completed",
		zap.String("origin", q.Origin),
		zap.String("dest", q.Dest),
		zap.Int("day", q.DayOfMonth),
		zap.Int("results", len(result)),
	)
	if len(result) == 0 {
		return nil, domain.ErrNoResults
	}
	return result, nil
}

func (s *FlightService) direct(ctx context.Context, tx repository.Tx, q Query) ([]domain.Itinerary, error) {
	found, err := tx.Flights().Direct(ctx, q.Origin, q.Dest, q.DayOfMonth, q.MaxResults)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Itinerary, 0, len(found))
	for _, f := range found {
		it := domain.NewDirectItinerary(f)
		if it.Full, err = isFull(ctx, tx, f); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *FlightService) oneStop(ctx context.Context, tx repository.Tx, q Query, limit int) ([]domain.Itinerary, error) {
	pairs, err := tx.Flights().OneStop(ctx, q.Origin, q.Dest, q.DayOfMonth, limit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Itinerary, 0, len(pairs))
	for _, p := range pairs {
		it := domain.NewOneStopItinerary(p[0], p[1])
		for _, f := range p {
			full, err := isFull(ctx, tx, f)
			if err != nil {
				return nil, err
			}
			it.Full = it.Full || full
		}
		out = append(out, it)
	}
	return out, nil
}

// isFull reports whether no seat of f is left.
func isFull(ctx context.Context, tx repository.Tx, f domain.Flight) (bool, error) {
	booked, err := tx.Capacities().Booked(ctx, f.ID)
	if err != nil {
		return false, err
	}
	return f.Capacity-booked < 1, nil
}

var _ FlightUseCase = (*FlightService)(nil)
