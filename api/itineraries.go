package api

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type searchRequest struct {
	Origin string `form:"origin" binding:"required"`
	Dest   string `form:"dest" binding:"required"`
	Direct bool   `form:"direct"`
	Day    int    `form:"day" binding:"required,min=1,max=31"`
	Limit  int    `form:"limit" binding:"required,min=1,max=1000"`
}

type itinerariesResponse struct {
	Itineraries []domain.Itinerary `json:"itineraries"`
	Text        string             `json:"text"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/itineraries", h.search)
}

func (h *FlightHandler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	its, err := h.service.Search(c.Request.Context(), sessionFrom(c), flights.Query{
		Origin:     req.Origin,
		Dest:       req.Dest,
		DirectOnly: req.Direct,
		DayOfMonth: req.Day,
		MaxResults: req.Limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	var text strings.Builder
	for _, it := range its {
		text.WriteString(it.Description)
	}
	c.JSON(http.StatusOK, itinerariesResponse{Itineraries: its, Text: text.String()})
}
