package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/gin-gonic/gin"
)

var outcomeStatus = map[*domain.Error]int{
	domain.ErrNotLoggedIn:         http.StatusUnauthorized,
	domain.ErrInvalidCredentials:  http.StatusUnauthorized,
	domain.ErrAlreadyLoggedIn:     http.StatusConflict,
	domain.ErrDuplicateAccount:    http.StatusConflict,
	domain.ErrDuplicateDayBooking: http.StatusConflict,
	domain.ErrUnavailable:         http.StatusConflict,
	domain.ErrInvalidArgument:     http.StatusBadRequest,
	domain.ErrInvalidItinerary:    http.StatusBadRequest,
	domain.ErrReservationNotFound: http.StatusNotFound,
	domain.ErrNoResults:           http.StatusNotFound,
	domain.ErrNoReservations:      http.StatusNotFound,
	domain.ErrInsufficientFunds:   http.StatusPaymentRequired,
}

func statusFor(err error) int {
	var outcome *domain.Error
	if !errors.As(err, &outcome) {
		return http.StatusInternalServerError
	}
	if status, ok := outcomeStatus[outcome]; ok {
		return status
	}
	return http.StatusServiceUnavailable
}

func writeError(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}
	if code := domain.Code(err); code != "" {
		body["code"] = code
	}

	var funds *domain.InsufficientFundsError
	if errors.As(err, &funds) {
		body["balance"] = funds.Balance
		body["price"] = funds.Price
	}

	c.JSON(statusFor(err), body)
}
