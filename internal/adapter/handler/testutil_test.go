package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/amanik/pesabank/internal/adapter/middleware"
	"github.com/amanik/pesabank/internal/core/security"
)

const testSecret = "test-secret"

// newTestApp wires a fiber app exactly the way cmd/api does, over the
// in-memory fake.
func newTestApp(bank *fakeBank) *fiber.App {
	app := fiber.New()

	authHandler := &AuthHandler{Repo: bank, JWTSecret: testSecret, TokenTTL: time.Hour}
	accountHandler := &AccountHandler{Repo: bank}
	transactionHandler := &TransactionHandler{Repo: bank}
	paymentHandler := &PaymentHandler{Repo: fakePayments{bank}}

	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	protected := middleware.Protected(testSecret)

	accounts := app.Group("/accounts", protected)
	accounts.Get("/", accountHandler.GetOwn)
	accounts.Get("/:accountNumber", accountHandler.GetByNumber)

	transactions := app.Group("/transactions", protected)
	transactions.Post("/send", transactionHandler.Send)
	transactions.Get("/history", transactionHandler.GetHistory)

	payments := app.Group("/payments", protected)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/history", paymentHandler.GetHistory)
	payments.Patch("/:id/status", paymentHandler.UpdateStatus)

	return app
}

func bearer(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := security.NewToken(userID, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return "Bearer " + token
}

// doJSON performs a request against the app and decodes the JSON response.
func doJSON(t *testing.T, app *fiber.App, method, path, auth string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response: %v", err)
	}
	decoded := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("Response is not JSON: %v (%s)", err, raw)
		}
	}
	return resp.StatusCode, decoded
}
