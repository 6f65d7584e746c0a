package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/amanik/pesabank/internal/core/domain"
)

type LedgerRepository struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// lockedAccount is an account row held under FOR UPDATE within a transfer.
type lockedAccount struct {
	id            uuid.UUID
	userID        uuid.UUID
	accountNumber string
	balance       decimal.Decimal
}

// Transfer moves amount from the sender's account to the account addressed
// by recipientNumber, recording exactly one transaction row. Everything
// happens in one database transaction: both rows are locked with
// FOR UPDATE before the balance check, so a concurrent transfer draining
// the same sender either sees this debit committed or waits for it. The
// rows are locked in id order regardless of direction, so two opposite
// transfers between the same pair cannot deadlock.
func (r *LedgerRepository) Transfer(ctx context.Context, senderUserID uuid.UUID, recipientNumber string, amount decimal.Decimal) (*domain.Transaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT id, user_id, account_number, balance::text
		FROM accounts
		WHERE user_id = $1 OR account_number = $2
		ORDER BY id
		FOR UPDATE
	`, senderUserID, recipientNumber)
	if err != nil {
		return nil, err
	}

	var sender, recipient *lockedAccount
	for rows.Next() {
		var acc lockedAccount
		var balance string
		if err := rows.Scan(&acc.id, &acc.userID, &acc.accountNumber, &balance); err != nil {
			rows.Close()
			return nil, err
		}
		if acc.balance, err = decimal.NewFromString(balance); err != nil {
			rows.Close()
			return nil, err
		}
		// Self-transfer resolves to a single row playing both parts.
		if acc.userID == senderUserID {
			s := acc
			sender = &s
		}
		if acc.accountNumber == recipientNumber {
			rcpt := acc
			recipient = &rcpt
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if sender == nil {
		return nil, domain.ErrSenderAccountNotFound
	}
	if recipient == nil {
		return nil, domain.ErrRecipientAccountNotFound
	}
	if sender.balance.LessThan(amount) {
		return nil, domain.ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = balance - $1 WHERE id = $2`, amount, sender.id); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = balance + $1 WHERE id = $2`, amount, recipient.id); err != nil {
		return nil, err
	}

	transaction := domain.Transaction{
		SenderAccountNumber:    sender.accountNumber,
		RecipientAccountNumber: recipient.accountNumber,
		Amount:                 amount,
		Type:                   "transfer",
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (sender_account_id, recipient_account_id, amount, type)
		VALUES ($1, $2, $3, 'transfer')
		RETURNING id, created_at
	`, sender.id, recipient.id, amount).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// History returns every transaction the caller's account took part in,
// newest first, with both counterparties resolved to number and name.
func (r *LedgerRepository) History(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	var accountID uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT id FROM accounts WHERE user_id = $1`, userID).Scan(&accountID)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.amount::text, t.type, t.created_at,
		       sa.account_number, ra.account_number,
		       su.full_name, ru.full_name
		FROM transactions t
		JOIN accounts sa ON t.sender_account_id = sa.id
		JOIN accounts ra ON t.recipient_account_id = ra.id
		JOIN users su ON sa.user_id = su.id
		JOIN users ru ON ra.user_id = ru.id
		WHERE t.sender_account_id = $1 OR t.recipient_account_id = $1
		ORDER BY t.created_at DESC
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		var amount string
		if err := rows.Scan(&t.ID, &amount, &t.Type, &t.CreatedAt,
			&t.SenderAccountNumber, &t.RecipientAccountNumber,
			&t.SenderName, &t.RecipientName); err != nil {
			return nil, err
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
