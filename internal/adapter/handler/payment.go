package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amanik/pesabank/internal/core/domain"
)

// PaymentStore is the slice of the storage layer the payment routes need.
type PaymentStore interface {
	CreatePayment(ctx context.Context, userID uuid.UUID, paymentType, referenceNumber string, amount decimal.Decimal) (*domain.Payment, error)
	History(ctx context.Context, userID uuid.UUID) ([]domain.Payment, error)
	UpdateStatus(ctx context.Context, paymentID, userID uuid.UUID, status string) (*domain.Payment, error)
}

type PaymentHandler struct {
	Repo PaymentStore
}

type PaymentRequest struct {
	PaymentType     string          `json:"payment_type"`
	ReferenceNumber string          `json:"reference_number"`
	Amount          decimal.Decimal `json:"amount"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

// Create records a bill payment: the debit and the payment row commit
// together or not at all.
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	userID, ok := ownerID(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	// 1. Parse JSON
	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// 2. Validate Input
	req.PaymentType = strings.TrimSpace(req.PaymentType)
	req.ReferenceNumber = strings.TrimSpace(req.ReferenceNumber)
	if req.PaymentType == "" || req.ReferenceNumber == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}
	amount, err := domain.ValidateAmount(req.Amount)
	if err != nil {
		return fail(c, err)
	}

	// 3. Debit and record as one atomic unit
	payment, err := h.Repo.CreatePayment(c.Context(), userID, req.PaymentType, req.ReferenceNumber, amount)
	if err != nil {
		return fail(c, err)
	}

	slog.Info("🧾 Payment recorded",
		"payment_id", payment.ID,
		"user_id", userID,
		"type", payment.PaymentType,
		"amount", payment.Amount,
	)
	return c.Status(http.StatusCreated).JSON(payment)
}

// GetHistory returns the caller's payments, newest first.
func (h *PaymentHandler) GetHistory(c *fiber.Ctx) error {
	userID, ok := ownerID(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	payments, err := h.Repo.History(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"payments": payments})
}

// UpdateStatus changes a payment's status. The balance moved at creation
// time, this only edits metadata, and only on the caller's own payment.
func (h *PaymentHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, ok := ownerID(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID"})
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Status == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Status is required"})
	}
	if !domain.ValidPaymentStatus(req.Status) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Status must be pending, completed or failed"})
	}

	payment, err := h.Repo.UpdateStatus(c.Context(), paymentID, userID, req.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(payment)
}
