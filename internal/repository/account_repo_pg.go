package repository

import (
	"context"

	"github.com/Domenick1991/flightres/internal/domain"
)

type PGAccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *PGAccountRepository {
	return &PGAccountRepository{db: db}
}

func (r *PGAccountRepository) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE username=$1)`, username).Scan(&exists); err != nil {
		return false, wrapErr(err)
	}
	return exists, nil
}

func (r *PGAccountRepository) Get(ctx context.Context, username string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT username, password_hash, salt, balance FROM accounts WHERE username=$1`, username)
	var a domain.Account
	if err := row.Scan(&a.Username, &a.PasswordHash, &a.Salt, &a.Balance); err != nil {
		return nil, wrapErr(err)
	}
	return &a, nil
}

func (r *PGAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.db.Exec(ctx, `INSERT INTO accounts (username, password_hash, salt, balance) VALUES ($1, $2, $3, $4)`,
		account.Username, account.PasswordHash, account.Salt, account.Balance)
	return wrapErr(err)
}

func (r *PGAccountRepository) AdjustBalance(ctx context.Context, username string, delta int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `UPDATE accounts SET balance = balance + $2 WHERE username=$1 RETURNING balance`, username, delta).Scan(&balance)
	if err != nil {
		err = wrapErr(err)
		if err == ErrNotFound {
			return 0, ErrNoRowsAffected
		}
		return 0, err
	}
	return balance, nil
}

var _ AccountRepository = (*PGAccountRepository)(nil)
