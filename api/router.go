package api

import (
	"net/http"

	"github.com/Domenick1991/flightres/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Accounts     *AccountHandler
	Flights      *FlightHandler
	Reservations *ReservationHandler
}

type RouterConfig struct {
	Sessions    session.Store
	Gatherer    prometheus.Gatherer
	Logger      *zap.Logger
	EnableReset bool
}

func NewRouter(h Handlers, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), AccessLog(cfg.Logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1", SessionMiddleware(cfg.Sessions, cfg.Logger))
	h.Accounts.Register(v1)
	h.Flights.Register(v1)
	h.Reservations.Register(v1)

	if cfg.EnableReset {
		h.Accounts.RegisterAdmin(router.Group("/admin", SessionMiddleware(cfg.Sessions, cfg.Logger)))
	}
	return router
}
