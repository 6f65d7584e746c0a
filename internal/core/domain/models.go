package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is a registered account owner. The password field only ever holds
// the bcrypt hash, never the plain text.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Account holds one user's balance. AccountNumber is the external lookup
// key other users address transfers to.
type Account struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
	FullName      string          `json:"full_name,omitempty"`
	Email         string          `json:"email,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AccountSummary is the limited view returned when looking up somebody
// else's account by number.
type AccountSummary struct {
	AccountNumber string `json:"account_number"`
	FullName      string `json:"full_name"`
}

// Transaction is one completed movement of money between two accounts.
// Rows are append-only: never updated, never deleted.
type Transaction struct {
	ID                     uuid.UUID       `json:"id"`
	SenderAccountNumber    string          `json:"sender_account_number"`
	RecipientAccountNumber string          `json:"recipient_account_number"`
	SenderName             string          `json:"sender_name,omitempty"`
	RecipientName          string          `json:"recipient_name,omitempty"`
	Amount                 decimal.Decimal `json:"amount"`
	Type                   string          `json:"type"`
	CreatedAt              time.Time       `json:"created_at"`
}

// Payment statuses. Creation always lands on completed; the status route
// may move a payment between these values later.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// ValidPaymentStatus reports whether s is one of the allowed status values.
func ValidPaymentStatus(s string) bool {
	return s == PaymentPending || s == PaymentCompleted || s == PaymentFailed
}

// Payment is one outbound bill payment. The balance debit happens once at
// creation; status is the only field that may change afterwards.
type Payment struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	PaymentType     string          `json:"payment_type"`
	ReferenceNumber string          `json:"reference_number"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}
