package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPGCapacityRepository_Booked(t *testing.T) {
	db := &MockDBTX{}
	db.On("QueryRow", mock.Anything, sqlWith("SELECT booked FROM booked_capacity WHERE fid=$1"), int64(7)).
		Return(fakeRow{values: []any{3}}).Once()
	db.On("QueryRow", mock.Anything, mock.Anything, int64(8)).Return(fakeRow{err: pgx.ErrNoRows}).Once()
	repo := NewCapacityRepository(db)

	booked, err := repo.Booked(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 3, booked)

	booked, err = repo.Booked(context.Background(), 8)
	require.NoError(t, err, "a flight without a row has nothing booked")
	assert.Zero(t, booked)
	db.AssertExpectations(t)
}

func TestPGCapacityRepository_Increment(t *testing.T) {
	db := &MockDBTX{}
	db.On("QueryRow", mock.Anything,
		sqlWith("INSERT INTO booked_capacity (fid, booked) VALUES ($1, 1)", "ON CONFLICT (fid) DO UPDATE SET booked = booked_capacity.booked + 1", "RETURNING booked"),
		int64(7),
	).Return(fakeRow{values: []any{1}}).Once()

	booked, err := NewCapacityRepository(db).Increment(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 1, booked)
	db.AssertExpectations(t)
}

func TestPGCapacityRepository_Decrement(t *testing.T) {
	db := &MockDBTX{}
	db.On("QueryRow", mock.Anything, sqlWith("SET booked = booked - 1 WHERE fid=$1 RETURNING booked"), int64(7)).
		Return(fakeRow{values: []any{0}}).Once()
	db.On("QueryRow", mock.Anything, mock.Anything, int64(8)).Return(fakeRow{err: pgx.ErrNoRows}).Once()
	repo := NewCapacityRepository(db)

	booked, err := repo.Decrement(context.Background(), 7)
	require.NoError(t, err)
	assert.Zero(t, booked)

	_, err = repo.Decrement(context.Background(), 8)
	assert.ErrorIs(t, err, ErrNotFound)
	db.AssertExpectations(t)
}

func TestPGCapacityRepository_Remove(t *testing.T) {
	db := &MockDBTX{}
	db.On("Exec", mock.Anything, sqlWith("DELETE FROM booked_capacity WHERE fid=$1"), int64(7)).Return(tag("DELETE 1"), nil).Once()

	require.NoError(t, NewCapacityRepository(db).Remove(context.Background(), 7))
	db.AssertExpectations(t)
}
