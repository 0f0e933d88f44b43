// Package accounts creates accounts and binds sessions to them.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/Domenick1991/flightres/internal/repository"
	"github.com/Domenick1991/flightres/internal/session"
	"github.com/Domenick1991/flightres/internal/txn"
	"go.uber.org/zap"
)

type AccountUseCase interface {
	CreateAccount(ctx context.Context, username, password string, initialBalance int64) error
	Login(ctx context.Context, sess *session.Session, username, password string) error
	Logout(ctx context.Context, sess *session.Session) error
	Reset(ctx context.Context, sess *session.Session) error
}

type PasswordHasher interface {
	Hash(password string, salt []byte) []byte
	NewSalt() ([]byte, error)
	Verify(password string, salt, stored []byte) bool
}

type AccountService struct {
	runner txn.Runner
	hasher PasswordHasher
	logger *zap.Logger
}

type AccountServiceOption func(*AccountService)

func WithLogger(l *zap.Logger) AccountServiceOption {
	return func(s *AccountService) {
		s.logger = l
	}
}

func NewAccountService(runner txn.Runner, hasher PasswordHasher, opts ...AccountServiceOption) *AccountService {
	s := &AccountService{
		runner: runner,
		hasher: hasher,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateAccount validates the input, derives the password hash and inserts
// the account under its normalized username.
func (s *AccountService) CreateAccount(ctx context.Context, username, password string, initialBalance int64) error {
	username = domain.NormalizeUsername(username)
	if err := domain.ValidateNewAccount(username, password, initialBalance); err != nil {
		return err
	}

	salt, err := s.hasher.NewSalt()
	if err != nil {
		s.logger.Error("generate salt", zap.Error(err))
		return domain.ErrCreateAccountFailed
	}
	account := &domain.Account{
		Username:     username,
		PasswordHash: s.hasher.Hash(password, salt),
		Salt:         salt,
		Balance:      initialBalance,
	}

	err = s.runner.Run(ctx, txn.Op{Name: "create_account", Failure: domain.ErrCreateAccountFailed}, func(ctx context.Context, tx repository.Tx) error {
		exists, err := tx.Accounts().Exists(ctx, username)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateAccount
		}
		return tx.Accounts().Create(ctx, account)
	})
	if err != nil {
		return err
	}

	s.logger.Info("account created", zap.String("username", username))
	return nil
}

func (s *AccountService) Login(ctx context.Context, sess *session.Session, username, password string) error {
	if sess.LoggedIn {
		return domain.ErrAlreadyLoggedIn
	}
	username = domain.NormalizeUsername(username)

	err := s.runner.Run(ctx, txn.Op{Name: "login", Failure: domain.ErrInvalidCredentials}, func(ctx context.Context, tx repository.Tx) error {
		account, err := tx.Accounts().Get(ctx, username)
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrInvalidCredentials
		}
		if err != nil {
			return err
		}
		if !s.hasher.Verify(password, account.Salt, account.PasswordHash) {
			return domain.ErrInvalidCredentials
		}
		return nil
	})
	if err != nil {
		return err
	}

	sess.Login(username)
	return nil
}

func (s *AccountService) Logout(_ context.Context, sess *session.Session) error {
	if !sess.LoggedIn {
		return domain.ErrNotLoggedIn
	}
	sess.Reset()
	return nil
}

// Reset removes every account, reservation and booked seat, then clears
// the session.
func (s *AccountService) Reset(ctx context.Context, sess *session.Session) error {
	err := s.runner.Run(ctx, txn.Op{Name: "reset", Failure: domain.ErrResetFailed}, func(ctx context.Context, tx repository.Tx) error {
		if err := tx.Truncate(ctx); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	sess.Reset()
	s.logger.Warn("all accounts and reservations cleared")
	return nil
}

var _ AccountUseCase = (*AccountService)(nil)
