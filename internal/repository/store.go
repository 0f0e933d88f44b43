package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrNoRowsAffected = errors.New("no rows affected")
)

// DBTX is the part of pgx shared by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store opens transactions at the strictest isolation level it offers.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one unit of work. Repositories obtained from a Tx are only valid
// until Commit or Rollback. Rollback after Commit is a no-op.
type Tx interface {
	Accounts() AccountRepository
	Flights() FlightRepository
	Capacities() CapacityRepository
	Reservations() ReservationRepository

	// Truncate removes every account, reservation and booked-capacity row.
	// Flights and the reservation id sequence are left untouched.
	Truncate(ctx context.Context) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type AccountRepository interface {
	Exists(ctx context.Context, username string) (bool, error)
	// Get returns ErrNotFound for unknown usernames.
	Get(ctx context.Context, username string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) error
	// AdjustBalance adds delta to the balance and returns the new balance,
	// or ErrNoRowsAffected when the account does not exist.
	AdjustBalance(ctx context.Context, username string, delta int64) (int64, error)
}

type FlightRepository interface {
	// Direct returns non-canceled flights ordered by duration then id.
	Direct(ctx context.Context, origin, dest string, day, limit int) ([]domain.Flight, error)
	// OneStop returns pairs of non-canceled flights through one intermediate
	// city on the same day, ordered by total duration then the two ids.
	OneStop(ctx context.Context, origin, dest string, day, limit int) ([][2]domain.Flight, error)
}

type CapacityRepository interface {
	// Booked returns 0 when the flight has no booked-capacity row.
	Booked(ctx context.Context, flightID int64) (int, error)
	// Increment adds one booked seat, creating the row at 1, and returns the new count.
	Increment(ctx context.Context, flightID int64) (int, error)
	// Decrement removes one booked seat and returns the new count, or
	// ErrNotFound when no row exists.
	Decrement(ctx context.Context, flightID int64) (int, error)
	Remove(ctx context.Context, flightID int64) error
}

type ReservationRepository interface {
	ExistsOnDay(ctx context.Context, username string, day int) (bool, error)
	// Create stores the reservation unpaid and sets its store-assigned id.
	Create(ctx context.Context, r *domain.Reservation) error
	// Get returns ErrNotFound unless the reservation belongs to username.
	Get(ctx context.Context, id int64, username string) (*domain.Reservation, error)
	// MarkPaid returns ErrNoRowsAffected when there is no unpaid reservation to mark.
	MarkPaid(ctx context.Context, id int64, username string) error
	// Delete returns ErrNoRowsAffected when nothing was deleted.
	Delete(ctx context.Context, id int64, username string) error
	ListByUser(ctx context.Context, username string) ([]domain.Reservation, error)
}
