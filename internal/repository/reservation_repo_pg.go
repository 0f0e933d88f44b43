package repository

import (
	"context"

	"github.com/Domenick1991/flightres/internal/domain"
)

type PGReservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) *PGReservationRepository {
	return &PGReservationRepository{db: db}
}

func (r *PGReservationRepository) ExistsOnDay(ctx context.Context, username string, day int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE username=$1 AND day=$2)`, username, day).Scan(&exists)
	if err != nil {
		return false, wrapErr(err)
	}
	return exists, nil
}

func (r *PGReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	res.Paid = false
	err := r.db.QueryRow(ctx, `INSERT INTO reservations (username, paid, info, day, price, fid1, fid2)
		VALUES ($1, false, $2, $3, $4, $5, $6)
		RETURNING rid`, res.Username, res.Description, res.DayOfMonth, res.Price, res.FlightID1, res.FlightID2).
		Scan(&res.ID)
	return wrapErr(err)
}

func (r *PGReservationRepository) Get(ctx context.Context, id int64, username string) (*domain.Reservation, error) {
	row := r.db.QueryRow(ctx, `SELECT rid, username, paid, info, day, price, fid1, fid2 FROM reservations WHERE rid=$1 AND username=$2`, id, username)
	var res domain.Reservation
	if err := row.Scan(&res.ID, &res.Username, &res.Paid, &res.Description, &res.DayOfMonth, &res.Price, &res.FlightID1, &res.FlightID2); err != nil {
		return nil, wrapErr(err)
	}
	return &res, nil
}

func (r *PGReservationRepository) MarkPaid(ctx context.Context, id int64, username string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE reservations SET paid = true WHERE rid=$1 AND username=$2 AND NOT paid`, id, username)
	if err != nil {
		return wrapErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *PGReservationRepository) Delete(ctx context.Context, id int64, username string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE rid=$1 AND username=$2`, id, username)
	if err != nil {
		return wrapErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *PGReservationRepository) ListByUser(ctx context.Context, username string) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT rid, username, paid, info, day, price, fid1, fid2 FROM reservations WHERE username=$1 ORDER BY rid`, username)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.ID, &res.Username, &res.Paid, &res.Description, &res.DayOfMonth, &res.Price, &res.FlightID1, &res.FlightID2); err != nil {
			return nil, wrapErr(err)
		}
		reservations = append(reservations, res)
	}
	return reservations, wrapErr(rows.Err())
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
