// Package txn runs booking operations as serializable transactions and
// retries them when the store reports a failure.
package txn

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/repository"
	"go.uber.org/zap"
)

const DefaultMaxAttempts = 5

// Op names an operation and the outcome reported once every attempt failed.
type Op struct {
	Name    string
	Failure error
}

type Func func(ctx context.Context, tx repository.Tx) error

// Runner executes a Func transactionally.
type Runner interface {
	Run(ctx context.Context, op Op, fn Func) error
}

type Coordinator struct {
	store       repository.Store
	maxAttempts int
	logger      *zap.Logger
	metrics     *Metrics
	attempts    atomic.Int64
}

type Option func(*Coordinator)

func WithMaxAttempts(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) {
		c.logger = l
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

func NewCoordinator(store repository.Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:       store,
		maxAttempts: DefaultMaxAttempts,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes fn in a fresh transaction, committing when fn returns nil.
//
// Domain outcomes returned by fn roll back and are returned unchanged. Any
// other error is a store failure: the transaction is rolled back and fn is
// run again from the start, up to the attempt bound, without backoff. When
// the bound is reached op.Failure is returned.
func (c *Coordinator) Run(ctx context.Context, op Op, fn Func) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			c.logger.Warn("transaction abandoned", zap.String("operation", op.Name), zap.Int("attempt", attempt), zap.Error(err))
			return fmt.Errorf("%w: %w", op.Failure, err)
		}

		c.attempts.Add(1)
		err := c.runOnce(ctx, fn)
		switch {
		case err == nil:
			c.metrics.observe(op.Name, resultCommitted)
			return nil
		case domain.IsOutcome(err):
			c.metrics.observe(op.Name, resultRejected)
			c.logger.Debug("transaction rejected", zap.String("operation", op.Name), zap.String("outcome", domain.Code(err)))
			return err
		}

		lastErr = err
		c.metrics.observe(op.Name, failureResult(err))
		c.logger.Warn("transaction failed, retrying",
			zap.String("operation", op.Name),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.maxAttempts),
			zap.Error(err),
		)
	}

	c.metrics.exhaust(op.Name)
	c.logger.Error("transaction retries exhausted",
		zap.String("operation", op.Name),
		zap.Int("attempts", c.maxAttempts),
		zap.Error(lastErr),
	)
	return op.Failure
}

// Attempts returns the number of transactions started since creation.
func (c *Coordinator) Attempts() int64 {
	return c.attempts.Load()
}

func (c *Coordinator) runOnce(ctx context.Context, fn Func) (err error) {
	tx, err := c.store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				c.logger.Debug("rollback failed", zap.Error(rbErr))
			}
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

var _ Runner = (*Coordinator)(nil)

func failureResult(err error) string {
	if errors.Is(err, domain.ErrTransientConflict) {
		return resultConflict
	}
	return resultStoreError
}
