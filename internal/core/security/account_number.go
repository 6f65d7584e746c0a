package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateAccountNumber returns a random 10-digit account number.
// Uses crypto/rand so numbers are not guessable; uniqueness is enforced by
// the accounts table constraint, the caller retries on collision.
func GenerateAccountNumber() (string, error) {
	// 1000000000 .. 9999999999
	n, err := rand.Int(rand.Reader, big.NewInt(9_000_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate account number: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+1_000_000_000), nil
}
