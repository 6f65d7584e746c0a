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

type PaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreatePayment debits the caller's account and records the payment in one
// transaction. The account row is locked before the balance check so two
// concurrent payments cannot both pass it.
func (r *PaymentRepository) CreatePayment(ctx context.Context, userID uuid.UUID, paymentType, referenceNumber string, amount decimal.Decimal) (*domain.Payment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var accountID uuid.UUID
	var balanceStr string
	err = tx.QueryRow(ctx, `
		SELECT id, balance::text FROM accounts WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&accountID, &balanceStr)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(amount) {
		return nil, domain.ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = balance - $1 WHERE id = $2`, amount, accountID); err != nil {
		return nil, err
	}

	payment := domain.Payment{
		UserID:          userID,
		PaymentType:     paymentType,
		ReferenceNumber: referenceNumber,
		Amount:          amount,
		Status:          domain.PaymentCompleted,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO payments (user_id, payment_type, reference_number, amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, userID, paymentType, referenceNumber, amount, domain.PaymentCompleted).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &payment, nil
}

// History returns the caller's payments, newest first.
func (r *PaymentRepository) History(ctx context.Context, userID uuid.UUID) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, payment_type, reference_number, amount::text, status, created_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var p domain.Payment
		var amount string
		if err := rows.Scan(&p.ID, &p.UserID, &p.PaymentType, &p.ReferenceNumber,
			&amount, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		if p.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// UpdateStatus changes a payment's status. Pure metadata edit: the balance
// already moved at creation time. The row must belong to the caller.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, paymentID, userID uuid.UUID, status string) (*domain.Payment, error) {
	var p domain.Payment
	var amount string
	err := r.db.QueryRow(ctx, `
		UPDATE payments SET status = $1
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, payment_type, reference_number, amount::text, status, created_at
	`, status, paymentID, userID).Scan(&p.ID, &p.UserID, &p.PaymentType, &p.ReferenceNumber,
		&amount, &p.Status, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, err
	}
	return &p, nil
}
