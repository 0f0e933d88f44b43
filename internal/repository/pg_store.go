package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// TxStarter is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxStarter interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type PGStore struct {
	db TxStarter
}

func NewPGStore(db TxStarter) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, wrapErr(err)
	}
	return newPGTx(tx), nil
}

type pgTx struct {
	tx           pgx.Tx
	accounts     *PGAccountRepository
	flights      *PGFlightRepository
	capacities   *PGCapacityRepository
	reservations *PGReservationRepository
}

func newPGTx(tx pgx.Tx) *pgTx {
	return &pgTx{
		tx:           tx,
		accounts:     NewAccountRepository(tx),
		flights:      NewFlightRepository(tx),
		capacities:   NewCapacityRepository(tx),
		reservations: NewReservationRepository(tx),
	}
}

func (t *pgTx) Accounts() AccountRepository         { return t.accounts }
func (t *pgTx) Flights() FlightRepository           { return t.flights }
func (t *pgTx) Capacities() CapacityRepository      { return t.capacities }
func (t *pgTx) Reservations() ReservationRepository { return t.reservations }

func (t *pgTx) Truncate(ctx context.Context) error {
	_, err := t.tx.Exec(ctx, `TRUNCATE reservations, booked_capacity, accounts`)
	return wrapErr(err)
}

func (t *pgTx) Commit(ctx context.Context) error {
	return wrapErr(t.tx.Commit(ctx))
}

func (t *pgTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

var (
	_ Store = (*PGStore)(nil)
	_ Tx    = (*pgTx)(nil)
)
