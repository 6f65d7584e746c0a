package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amanik/pesabank/internal/core/domain"
)

// LedgerStore is the slice of the storage layer the transfer routes need.
type LedgerStore interface {
	Transfer(ctx context.Context, senderUserID uuid.UUID, recipientNumber string, amount decimal.Decimal) (*domain.Transaction, error)
	History(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	Repo LedgerStore
}

type SendRequest struct {
	RecipientAccountNumber string          `json:"recipient_account_number"`
	Amount                 decimal.Decimal `json:"amount"`
}

// Send executes one atomic peer-to-peer transfer. Validation runs before
// the store is touched; the store either commits the whole movement or
// nothing. Resubmitting the same request moves the money again — there is
// no deduplication here.
func (h *TransactionHandler) Send(c *fiber.Ctx) error {
	userID, ok := ownerID(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	// 1. Parse JSON
	var req SendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// 2. Validate Input
	if req.RecipientAccountNumber == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "recipient_account_number is required"})
	}
	amount, err := domain.ValidateAmount(req.Amount)
	if err != nil {
		return fail(c, err)
	}

	// 3. Execute the transfer as one atomic unit
	transaction, err := h.Repo.Transfer(c.Context(), userID, req.RecipientAccountNumber, amount)
	if err != nil {
		return fail(c, err)
	}

	slog.Info("💸 Transfer complete",
		"transaction_id", transaction.ID,
		"from", transaction.SenderAccountNumber,
		"to", transaction.RecipientAccountNumber,
		"amount", transaction.Amount,
	)
	return c.JSON(fiber.Map{
		"message":     "Transfer successful",
		"transaction": transaction,
	})
}

// GetHistory returns the caller's transactions, newest first.
func (h *TransactionHandler) GetHistory(c *fiber.Ctx) error {
	userID, ok := ownerID(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	transactions, err := h.Repo.History(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"transactions": transactions})
}
