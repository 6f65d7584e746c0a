package domain

import "errors"

var (
	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("user already exists")
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountNotFound indicates the caller has no account row.
	ErrAccountNotFound = errors.New("account not found")
	// ErrSenderAccountNotFound indicates the transfer sender has no account.
	ErrSenderAccountNotFound = errors.New("sender account not found")
	// ErrRecipientAccountNotFound indicates the recipient key resolved to nothing.
	ErrRecipientAccountNotFound = errors.New("recipient account not found")
	// ErrInsufficientFunds indicates the balance cannot cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrPaymentNotFound indicates no payment matches both id and owner.
	ErrPaymentNotFound = errors.New("payment not found")
)
