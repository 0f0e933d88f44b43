package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightres/api"
	"github.com/Domenick1991/flightres/config"
	"github.com/Domenick1991/flightres/internal/auth"
	"github.com/Domenick1991/flightres/internal/bootstrap"
	"github.com/Domenick1991/flightres/internal/cache"
	"github.com/Domenick1991/flightres/internal/kafka"
	"github.com/Domenick1991/flightres/internal/logging"
	"github.com/Domenick1991/flightres/internal/migrations"
	"github.com/Domenick1991/flightres/internal/repository"
	"github.com/Domenick1991/flightres/internal/service/accounts"
	"github.com/Domenick1991/flightres/internal/service/booking"
	"github.com/Domenick1991/flightres/internal/service/cancellation"
	"github.com/Domenick1991/flightres/internal/service/flights"
	"github.com/Domenick1991/flightres/internal/service/payment"
	"github.com/Domenick1991/flightres/internal/session"
	"github.com/Domenick1991/flightres/internal/txn"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.Migrate {
		if err := migrate(ctx, cfg.Database.DSN()); err != nil {
			logger.Fatal("migrate database", zap.Error(err))
		}
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	coord := txn.NewCoordinator(
		repository.NewPGStore(pool),
		txn.WithMaxAttempts(cfg.Txn.MaxAttempts),
		txn.WithLogger(logger.Named("txn")),
		txn.WithMetrics(txn.NewMetrics(reg)),
	)

	var events *kafka.ReservationEvents
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger.Named("kafka"))
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			logger.Warn("kafka unreachable, events may be lost", zap.Error(err))
		}
		events = kafka.NewReservationEvents(producer, cfg.Kafka.ReservationTopic, cfg.Kafka.NotificationsTopic, logger.Named("events"))
	}

	sessions := newSessionStore(ctx, cfg, logger)

	hasher := auth.NewHasher(auth.WithIterations(cfg.Auth.Iterations))
	handlers := api.Handlers{
		Accounts: api.NewAccountHandler(accounts.NewAccountService(coord, hasher, accounts.WithLogger(logger.Named("accounts")))),
		Flights:  api.NewFlightHandler(flights.NewFlightService(coord, logger.Named("flights"))),
		Reservations: api.NewReservationHandler(
			booking.NewBookingService(coord, booking.WithEvents(events), booking.WithLogger(logger.Named("booking"))),
			payment.NewPaymentService(coord, events, logger.Named("payment")),
			cancellation.NewCancellationService(coord, events, logger.Named("cancellation")),
		),
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(handlers, api.RouterConfig{
		Sessions:    sessions,
		Gatherer:    reg,
		Logger:      logger.Named("http"),
		EnableReset: cfg.Admin.EnableReset,
	})

	if err := bootstrap.NewServers(cfg, router, logger).Run(ctx, cfg.GRPC.Address); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func migrate(ctx context.Context, dsn string) error {
	db, err := migrations.Open(dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return migrations.Up(ctx, db)
}

func newSessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) session.Store {
	ttl := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	if cfg.Session.Backend != config.SessionBackendRedis {
		return session.NewMemoryStore(ttl)
	}

	client := cache.NewRedisClient(cfg.Redis)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatal("connect redis", zap.Error(err))
	}
	return cache.NewRedisSessionStore(client, ttl)
}
