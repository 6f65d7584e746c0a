package handler

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/amanik/pesabank/internal/core/domain"
)

// AccountStore is the slice of the storage layer the account routes need.
type AccountStore interface {
	GetAccountByOwner(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.AccountSummary, error)
}

type AccountHandler struct {
	Repo AccountStore
}

// GetOwn returns the caller's full account snapshot.
func (h *AccountHandler) GetOwn(c *fiber.Ctx) error {
	userID, ok := ownerID(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	account, err := h.Repo.GetAccountByOwner(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(account)
}

// GetByNumber returns the limited snapshot used to confirm a recipient
// before sending money.
func (h *AccountHandler) GetByNumber(c *fiber.Ctx) error {
	accountNumber := c.Params("accountNumber")

	summary, err := h.Repo.GetAccountByNumber(c.Context(), accountNumber)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}
