package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/amanik/pesabank/internal/core/domain"
	"github.com/amanik/pesabank/internal/core/security"
)

// UserStore is the slice of the storage layer the auth routes need.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash, fullName string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

type AuthHandler struct {
	Repo      UserStore
	JWTSecret string
	TokenTTL  time.Duration
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates the user and their zero-balance account, then signs
// them in.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest

	// 1. Parse JSON
	if err := c.BodyParser(&req); err != nil {
		slog.Warn("Invalid register body", "error", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// 2. Validate Input
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "email, password and full_name are required"})
	}

	// 3. Hash password and create user + account
	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return fail(c, err)
	}
	user, err := h.Repo.CreateUser(c.Context(), req.Email, hash, strings.TrimSpace(req.FullName))
	if err != nil {
		return fail(c, err)
	}

	// 4. Issue token
	token, err := security.NewToken(user.ID, h.JWTSecret, h.TokenTTL)
	if err != nil {
		return fail(c, err)
	}

	slog.Info("✅ User registered", "user_id", user.ID, "email", user.Email)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"token":   token,
		"user_id": user.ID,
		"message": "User registered successfully",
	})
}

// Login checks credentials and issues a fresh token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.Repo.GetUserByEmail(c.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		return fail(c, err)
	}
	if !security.CheckPassword(req.Password, user.PasswordHash) {
		// Same message whether the email or the password was wrong.
		return fail(c, domain.ErrInvalidCredentials)
	}

	token, err := security.NewToken(user.ID, h.JWTSecret, h.TokenTTL)
	if err != nil {
		return fail(c, err)
	}

	slog.Info("User logged in", "user_id", user.ID)
	return c.JSON(fiber.Map{
		"token":   token,
		"user_id": user.ID,
		"message": "Login successful",
	})
}
