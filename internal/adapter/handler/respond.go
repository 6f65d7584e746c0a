package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/amanik/pesabank/internal/adapter/middleware"
	"github.com/amanik/pesabank/internal/core/domain"
)

// ownerID reads the authenticated user id the auth middleware stored.
func ownerID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(middleware.UserIDKey).(uuid.UUID)
	return id, ok
}

// fail maps a domain error onto the HTTP status codes the API promises.
// Anything unrecognized is an internal fault: logged in full, reported
// with a generic message.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrBadAmount),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrInsufficientFunds):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrSenderAccountNotFound),
		errors.Is(err, domain.ErrRecipientAccountNotFound),
		errors.Is(err, domain.ErrPaymentNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		slog.Error("Internal error", "error", err, "path", c.Path())
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
