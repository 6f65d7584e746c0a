package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrBadAmount indicates a missing, malformed, zero or negative amount.
var ErrBadAmount = errors.New("amount must be a positive number with at most 2 decimal places")

// Balances are stored as NUMERIC(15,2); amounts carry the same two decimal
// places so 40 and 40.00 compare and persist identically.
const amountPlaces = 2

// ValidateAmount checks a caller-supplied amount and normalizes it to two
// decimal places. Zero and negative amounts are rejected before any store
// call, as are sub-cent fractions (15.001 is not money we can move).
func ValidateAmount(d decimal.Decimal) (decimal.Decimal, error) {
	if !d.IsPositive() {
		return decimal.Zero, ErrBadAmount
	}
	if d.Exponent() < -amountPlaces && !d.Equal(d.Round(amountPlaces)) {
		return decimal.Zero, ErrBadAmount
	}
	return d.Round(amountPlaces), nil
}
