package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/amanik/pesabank/internal/core/domain"
)

type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccountByOwner returns the caller's own account with holder details.
func (r *AccountRepository) GetAccountByOwner(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	var acc domain.Account
	var balance string
	err := r.db.QueryRow(ctx, `
		SELECT a.id, a.user_id, a.account_number, a.balance::text, a.created_at,
		       u.full_name, u.email
		FROM accounts a
		JOIN users u ON a.user_id = u.id
		WHERE a.user_id = $1
	`, userID).Scan(&acc.ID, &acc.UserID, &acc.AccountNumber, &balance, &acc.CreatedAt,
		&acc.FullName, &acc.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	acc.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// GetAccountByNumber returns the limited snapshot shown to other users
// before they send money: account number and holder name, never balance.
func (r *AccountRepository) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.AccountSummary, error) {
	var summary domain.AccountSummary
	err := r.db.QueryRow(ctx, `
		SELECT a.account_number, u.full_name
		FROM accounts a
		JOIN users u ON a.user_id = u.id
		WHERE a.account_number = $1
	`, accountNumber).Scan(&summary.AccountNumber, &summary.FullName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
