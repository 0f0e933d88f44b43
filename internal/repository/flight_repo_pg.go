package repository

import (
	"context"

	"github.com/Domenick1991/flightres/internal/domain"
)

const flightColumns = `fid, day_of_month, carrier_id, flight_num, origin_city, dest_city, actual_time, capacity, price, canceled`

type PGFlightRepository struct {
	db DBTX
}

func NewFlightRepository(db DBTX) *PGFlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) Direct(ctx context.Context, origin, dest string, day, limit int) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE origin_city=$1 AND dest_city=$2 AND day_of_month=$3 AND NOT canceled
		ORDER BY actual_time, fid
		LIMIT $4`, origin, dest, day, limit)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var flights []domain.Flight
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.DayOfMonth, &f.Carrier, &f.Number, &f.Origin, &f.Dest, &f.Duration, &f.Capacity, &f.Price, &f.Canceled); err != nil {
			return nil, wrapErr(err)
		}
		flights = append(flights, f)
	}
	return flights, wrapErr(rows.Err())
}

func (r *PGFlightRepository) OneStop(ctx context.Context, origin, dest string, day, limit int) ([][2]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT
			f1.fid, f1.day_of_month, f1.carrier_id, f1.flight_num, f1.origin_city, f1.dest_city, f1.actual_time, f1.capacity, f1.price, f1.canceled,
			f2.fid, f2.day_of_month, f2.carrier_id, f2.flight_num, f2.origin_city, f2.dest_city, f2.actual_time, f2.capacity, f2.price, f2.canceled
		FROM flights f1
		JOIN flights f2 ON f2.origin_city = f1.dest_city AND f2.day_of_month = f1.day_of_month
		WHERE f1.origin_city=$1 AND f2.dest_city=$2 AND f1.day_of_month=$3
			AND NOT f1.canceled AND NOT f2.canceled
		ORDER BY f1.actual_time + f2.actual_time, f1.fid, f2.fid
		LIMIT $4`, origin, dest, day, limit)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var pairs [][2]domain.Flight
	for rows.Next() {
		var a, b domain.Flight
		if err := rows.Scan(
			&a.ID, &a.DayOfMonth, &a.Carrier, &a.Number, &a.Origin, &a.Dest, &a.Duration, &a.Capacity, &a.Price, &a.Canceled,
			&b.ID, &b.DayOfMonth, &b.Carrier, &b.Number, &b.Origin, &b.Dest, &b.Duration, &b.Capacity, &b.Price, &b.Canceled,
		); err != nil {
			return nil, wrapErr(err)
		}
		pairs = append(pairs, [2]domain.Flight{a, b})
	}
	return pairs, wrapErr(rows.Err())
}

var _ FlightRepository = (*PGFlightRepository)(nil)
