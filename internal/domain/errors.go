package domain

import (
	"errors"
	"fmt"
)

// Error is a domain outcome reported to the caller. Outcomes are final:
// the transaction coordinator never retries them.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

var (
	ErrAlreadyLoggedIn     = newError("already_logged_in", "user already logged in")
	ErrInvalidCredentials  = newError("invalid_credentials", "login failed")
	ErrInvalidArgument     = newError("invalid_argument", "invalid argument")
	ErrDuplicateAccount    = newError("duplicate_account", "account already exists")
	ErrCreateAccountFailed = newError("create_account_failed", "failed to create user")
	ErrNotLoggedIn         = newError("not_logged_in", "not logged in")
	ErrInvalidItinerary    = newError("invalid_itinerary", "no such itinerary")
	ErrUnavailable         = newError("unavailable", "itinerary is full")
	ErrDuplicateDayBooking = newError("duplicate_day_booking", "cannot book two flights in the same day")
	ErrBookingFailed       = newError("booking_failed", "booking failed")
	ErrReservationNotFound = newError("reservation_not_found", "cannot find unpaid reservation")
	ErrInsufficientFunds   = newError("insufficient_funds", "insufficient funds")
	ErrPaymentFailed       = newError("payment_failed", "failed to pay for reservation")
	ErrCancellationFailed  = newError("cancellation_failed", "failed to cancel reservation")
	ErrNoResults           = newError("no_results", "no flights match your selection")
	ErrSearchFailed        = newError("search_failed", "failed to search")
	ErrNoReservations      = newError("no_reservations", "no reservations found")
	ErrReservationsFailed  = newError("reservations_failed", "failed to retrieve reservations")
	ErrResetFailed         = newError("reset_failed", "failed to clear tables")
)

// ErrTransientConflict marks a store failure that is expected to succeed on
// a fresh transaction. It is not an outcome.
var ErrTransientConflict = errors.New("transient transaction conflict")

type InsufficientFundsError struct {
	Balance int64
	Price   int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("user has only %d in account but itinerary costs %d", e.Balance, e.Price)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// IsOutcome reports whether err carries a domain outcome.
func IsOutcome(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// Code returns the outcome code of err, or "" for non-outcome errors.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
