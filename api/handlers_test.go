package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var anySession = mock.AnythingOfType("*session.Session")

func newTestContext(method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAccountHandler_create(t *testing.T) {
	mockService := &MockAccountUseCase{}
	handler := NewAccountHandler(mockService)
	c, w := newTestContext("POST", "/api/v1/accounts", createAccountRequest{Username: "Alice", Password: "pw1", Balance: 100})

	mockService.On("CreateAccount", c.Request.Context(), "Alice", "pw1", int64(100)).Return(nil).Once()

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Created user alice", decode(t, w)["message"])
	mockService.AssertExpectations(t)
}

func TestAccountHandler_create_Duplicate(t *testing.T) {
	mockService := &MockAccountUseCase{}
	handler := NewAccountHandler(mockService)
	c, w := newTestContext("POST", "/api/v1/accounts", createAccountRequest{Username: "alice", Password: "pw1"})

	mockService.On("CreateAccount", c.Request.Context(), "alice", "pw1", int64(0)).Return(domain.ErrDuplicateAccount).Once()

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.Equal(t, "duplicate_account", body["code"])
	assert.Equal(t, "account already exists", body["error"])
}

func TestAccountHandler_create_BadJSON(t *testing.T) {
	handler := NewAccountHandler(&MockAccountUseCase{})
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/accounts", bytes.NewBufferString("{"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountHandler_login(t *testing.T) {
	mockService := &MockAccountUseCase{}
	handler := NewAccountHandler(mockService)
	c, w := newTestContext("POST", "/api/v1/sessions", loginRequest{Username: "alice", Password: "pw1"})

	mockService.On("Login", c.Request.Context(), anySession, "alice", "pw1").
		Run(func(args mock.Arguments) {
			args.Get(1).(interface{ Login(string) }).Login("alice")
		}).
		Return(nil).Once()

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged in as alice", decode(t, w)["message"])
	assert.True(t, sessionFrom(c).LoggedIn)
}

func TestAccountHandler_login_Failed(t *testing.T) {
	mockService := &MockAccountUseCase{}
	handler := NewAccountHandler(mockService)
	c, w := newTestContext("POST", "/api/v1/sessions", loginRequest{Username: "alice", Password: "bad"})

	mockService.On("Login", c.Request.Context(), anySession, "alice", "bad").Return(domain.ErrInvalidCredentials).Once()

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "login failed", decode(t, w)["error"])
}

func TestAccountHandler_logout(t *testing.T) {
	mockService := &MockAccountUseCase{}
	handler := NewAccountHandler(mockService)
	c, w := newTestContext("DELETE", "/api/v1/sessions", nil)

	mockService.On("Logout", c.Request.Context(), anySession).Return(domain.ErrNotLoggedIn).Once()

	handler.logout(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFlightHandler_search(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)
	c, w := newTestContext("GET", "/api/v1/itineraries?origin=SEA&dest=BOS&direct=true&day=5&limit=3", nil)

	it := domain.NewDirectItinerary(domain.Flight{ID: 1, DayOfMonth: 5, Origin: "SEA", Dest: "BOS", Duration: 300, Capacity: 2, Price: 40})
	it.Render(0)
	q := flights.Query{Origin: "SEA", Dest: "BOS", DirectOnly: true, DayOfMonth: 5, MaxResults: 3}
	mockService.On("Search", c.Request.Context(), anySession, q).Return([]domain.Itinerary{it}, nil).Once()

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp itinerariesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Itineraries, 1)
	assert.Equal(t, it.Description, resp.Text)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_search_MissingParams(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)
	c, w := newTestContext("GET", "/api/v1/itineraries?origin=SEA&day=5&limit=3", nil)

	handler.search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlightHandler_search_LimitOutOfRange(t *testing.T) {
	for _, limit := range []string{"0", "1001", "1099511627776"} {
		t.Run(limit, func(t *testing.T) {
			mockService := &MockFlightUseCase{}
			handler := NewFlightHandler(mockService)
			c, w := newTestContext("GET", "/api/v1/itineraries?origin=SEA&dest=BOS&day=5&limit="+limit, nil)

			handler.search(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockService.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestFlightHandler_search_NoResults(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)
	c, w := newTestContext("GET", "/api/v1/itineraries?origin=SEA&dest=XXX&day=5&limit=3", nil)

	mockService.On("Search", c.Request.Context(), anySession, mock.Anything).Return(nil, domain.ErrNoResults).Once()

	handler.search(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "no flights match your selection", decode(t, w)["error"])
}

func TestReservationHandler_book(t *testing.T) {
	mockBooking := &MockBookingUseCase{}
	handler := NewReservationHandler(mockBooking, &MockPaymentUseCase{}, &MockCancellationUseCase{})
	c, w := newTestContext("POST", "/api/v1/reservations", map[string]int{"itinerary": 0})

	mockBooking.On("Book", c.Request.Context(), anySession, 0).Return(int64(7), nil).Once()

	handler.book(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(7), body["reservation_id"])
	assert.Equal(t, "Booked flight(s), reservation ID: 7", body["message"])
}

func TestReservationHandler_book_MissingIndex(t *testing.T) {
	mockBooking := &MockBookingUseCase{}
	handler := NewReservationHandler(mockBooking, &MockPaymentUseCase{}, &MockCancellationUseCase{})
	c, w := newTestContext("POST", "/api/v1/reservations", map[string]int{})

	handler.book(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockBooking.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything)
}

func TestReservationHandler_book_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrNotLoggedIn, http.StatusUnauthorized},
		{fmt.Errorf("%w 3", domain.ErrInvalidItinerary), http.StatusBadRequest},
		{domain.ErrUnavailable, http.StatusConflict},
		{domain.ErrDuplicateDayBooking, http.StatusConflict},
		{domain.ErrBookingFailed, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(domain.Code(tt.err), func(t *testing.T) {
			mockBooking := &MockBookingUseCase{}
			handler := NewReservationHandler(mockBooking, &MockPaymentUseCase{}, &MockCancellationUseCase{})
			c, w := newTestContext("POST", "/api/v1/reservations", map[string]int{"itinerary": 3})
			mockBooking.On("Book", c.Request.Context(), anySession, 3).Return(int64(0), tt.err).Once()

			handler.book(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.err.Error(), decode(t, w)["error"])
		})
	}
}

func TestReservationHandler_list(t *testing.T) {
	mockBooking := &MockBookingUseCase{}
	handler := NewReservationHandler(mockBooking, &MockPaymentUseCase{}, &MockCancellationUseCase{})
	c, w := newTestContext("GET", "/api/v1/reservations", nil)

	list := []domain.Reservation{{ID: 1, Username: "alice", Paid: true, Description: "Itinerary 0: 1 flight(s), 10 minutes\nID: 1\n"}}
	mockBooking.On("Reservations", c.Request.Context(), anySession).Return(list, nil).Once()

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Reservation 1 paid: true:\nID: 1\n", decode(t, w)["text"])
}

func TestReservationHandler_pay(t *testing.T) {
	mockPayment := &MockPaymentUseCase{}
	handler := NewReservationHandler(&MockBookingUseCase{}, mockPayment, &MockCancellationUseCase{})
	c, w := newTestContext("POST", "/api/v1/reservations/1/payment", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	mockPayment.On("Pay", c.Request.Context(), anySession, int64(1)).Return(int64(60), nil).Once()

	handler.pay(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Paid reservation: 1 remaining balance: 60", decode(t, w)["message"])
}

func TestReservationHandler_pay_InsufficientFunds(t *testing.T) {
	mockPayment := &MockPaymentUseCase{}
	handler := NewReservationHandler(&MockBookingUseCase{}, mockPayment, &MockCancellationUseCase{})
	c, w := newTestContext("POST", "/api/v1/reservations/1/payment", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	mockPayment.On("Pay", c.Request.Context(), anySession, int64(1)).
		Return(int64(0), &domain.InsufficientFundsError{Balance: 10, Price: 40}).Once()

	handler.pay(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(10), body["balance"])
	assert.Equal(t, float64(40), body["price"])
	assert.Equal(t, "insufficient_funds", body["code"])
}

func TestReservationHandler_pay_InvalidID(t *testing.T) {
	mockPayment := &MockPaymentUseCase{}
	handler := NewReservationHandler(&MockBookingUseCase{}, mockPayment, &MockCancellationUseCase{})
	c, w := newTestContext("POST", "/api/v1/reservations/abc/payment", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.pay(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockPayment.AssertNotCalled(t, "Pay", mock.Anything, mock.Anything, mock.Anything)
}

func TestReservationHandler_cancel(t *testing.T) {
	mockCancel := &MockCancellationUseCase{}
	handler := NewReservationHandler(&MockBookingUseCase{}, &MockPaymentUseCase{}, mockCancel)
	c, w := newTestContext("DELETE", "/api/v1/reservations/4", nil)
	c.Params = gin.Params{{Key: "id", Value: "4"}}

	mockCancel.On("Cancel", c.Request.Context(), anySession, int64(4)).Return(nil).Once()

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Canceled reservation 4", decode(t, w)["message"])
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
	assert.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("%w 3 under user: bob", domain.ErrReservationNotFound)))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(domain.ErrCancellationFailed))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(domain.ErrSearchFailed))
	assert.Equal(t, http.StatusPaymentRequired, statusFor(&domain.InsufficientFundsError{}))
}
