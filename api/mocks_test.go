package api

import (
	"context"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/service/flights"
	"github.com/Domenick1991/flightres/internal/session"
	"github.com/stretchr/testify/mock"
)

type MockAccountUseCase struct {
	mock.Mock
}

func (m *MockAccountUseCase) CreateAccount(ctx context.Context, username, password string, initialBalance int64) error {
	return m.Called(ctx, username, password, initialBalance).Error(0)
}

func (m *MockAccountUseCase) Login(ctx context.Context, sess *session.Session, username, password string) error {
	return m.Called(ctx, sess, username, password).Error(0)
}

func (m *MockAccountUseCase) Logout(ctx context.Context, sess *session.Session) error {
	return m.Called(ctx, sess).Error(0)
}

func (m *MockAccountUseCase) Reset(ctx context.Context, sess *session.Session) error {
	return m.Called(ctx, sess).Error(0)
}

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Search(ctx context.Context, sess *session.Session, q flights.Query) ([]domain.Itinerary, error) {
	args := m.Called(ctx, sess, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Itinerary), args.Error(1)
}

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Book(ctx context.Context, sess *session.Session, itineraryIndex int) (int64, error) {
	args := m.Called(ctx, sess, itineraryIndex)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingUseCase) Reservations(ctx context.Context, sess *session.Session) ([]domain.Reservation, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

type MockPaymentUseCase struct {
	mock.Mock
}

func (m *MockPaymentUseCase) Pay(ctx context.Context, sess *session.Session, reservationID int64) (int64, error) {
	args := m.Called(ctx, sess, reservationID)
	return args.Get(0).(int64), args.Error(1)
}

type MockCancellationUseCase struct {
	mock.Mock
}

func (m *MockCancellationUseCase) Cancel(ctx context.Context, sess *session.Session, reservationID int64) error {
	return m.Called(ctx, sess, reservationID).Error(0)
}
