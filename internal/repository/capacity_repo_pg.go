package repository

import (
	"context"
)

type PGCapacityRepository struct {
	db DBTX
}

func NewCapacityRepository(db DBTX) *PGCapacityRepository {
	return &PGCapacityRepository{db: db}
}

func (r *PGCapacityRepository) Booked(ctx context.Context, flightID int64) (int, error) {
	var booked int
	err := r.db.QueryRow(ctx, `SELECT booked FROM booked_capacity WHERE fid=$1`, flightID).Scan(&booked)
	if err != nil {
		if err = wrapErr(err); err == ErrNotFound {
			return 0, nil
		}
		return 0, err
	}
	return booked, nil
}

func (r *PGCapacityRepository) Increment(ctx context.Context, flightID int64) (int, error) {
	var booked int
	err := r.db.QueryRow(ctx, `INSERT INTO booked_capacity (fid, booked) VALUES ($1, 1)
		ON CONFLICT (fid) DO UPDATE SET booked = booked_capacity.booked + 1
		RETURNING booked`, flightID).Scan(&booked)
	if err != nil {
		return 0, wrapErr(err)
	}
	return booked, nil
}

func (r *PGCapacityRepository) Decrement(ctx context.Context, flightID int64) (int, error) {
	var booked int
	err := r.db.QueryRow(ctx, `UPDATE booked_capacity SET booked = booked - 1 WHERE fid=$1 RETURNING booked`, flightID).Scan(&booked)
	if err != nil {
		return 0, wrapErr(err)
	}
	return booked, nil
}

func (r *PGCapacityRepository) Remove(ctx context.Context, flightID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM booked_capacity WHERE fid=$1`, flightID)
	return wrapErr(err)
}

var _ CapacityRepository = (*PGCapacityRepository)(nil)
