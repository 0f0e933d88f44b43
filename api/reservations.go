package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/service/booking"
	"github.com/Domenick1991/flightres/internal/service/cancellation"
	"github.com/Domenick1991/flightres/internal/service/payment"
	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	booking      booking.BookingUseCase
	payment      payment.PaymentUseCase
	cancellation cancellation.CancellationUseCase
}

type bookRequest struct {
	Itinerary *int `json:"itinerary" binding:"required"`
}

type bookResponse struct {
	ReservationID int64  `json:"reservation_id"`
	Message       string `json:"message"`
}

type payResponse struct {
	ReservationID int64  `json:"reservation_id"`
	Balance       int64  `json:"balance"`
	Message       string `json:"message"`
}

type reservationsResponse struct {
	Reservations []domain.Reservation `json:"reservations"`
	Text         string               `json:"text"`
}

func NewReservationHandler(b booking.BookingUseCase, p payment.PaymentUseCase, cl cancellation.CancellationUseCase) *ReservationHandler {
	return &ReservationHandler{booking: b, payment: p, cancellation: cl}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.POST("/reservations", h.book)
	router.GET("/reservations", h.list)
	router.POST("/reservations/:id/payment", h.pay)
	router.DELETE("/reservations/:id", h.cancel)
}

func (h *ReservationHandler) book(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.booking.Book(c.Request.Context(), sessionFrom(c), *req.Itinerary)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookResponse{
		ReservationID: id,
		Message:       fmt.Sprintf("Booked flight(s), reservation ID: %d", id),
	})
}

func (h *ReservationHandler) list(c *gin.Context) {
	list, err := h.booking.Reservations(c.Request.Context(), sessionFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	var text strings.Builder
	for _, r := range list {
		text.WriteString(r.String())
	}
	c.JSON(http.StatusOK, reservationsResponse{Reservations: list, Text: text.String()})
}

func (h *ReservationHandler) pay(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}

	balance, err := h.payment.Pay(c.Request.Context(), sessionFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payResponse{
		ReservationID: id,
		Balance:       balance,
		Message:       fmt.Sprintf("Paid reservation: %d remaining balance: %d", id, balance),
	})
}

func (h *ReservationHandler) cancel(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}

	if err := h.cancellation.Cancel(c.Request.Context(), sessionFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Canceled reservation %d", id)})
}

func reservationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation id"})
		return 0, false
	}
	return id, true
}
