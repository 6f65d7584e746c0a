package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/amanik/pesabank/internal/adapter/handler"
	"github.com/amanik/pesabank/internal/adapter/middleware"
	"github.com/amanik/pesabank/internal/adapter/storage"
	"github.com/amanik/pesabank/internal/core/config"
)

func main() {
	// 1. Load Config
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		slog.Error("❌ JWT_SECRET is not set")
		os.Exit(1)
	}

	// 2. Setup Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 3. Connect to Database
	dbPool, err := storage.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("❌ Database connection failed", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ Connected to Postgres")

	// 4. Setup Repos & Handlers
	userRepo := storage.NewUserRepository(dbPool)
	accountRepo := storage.NewAccountRepository(dbPool)
	ledgerRepo := storage.NewLedgerRepository(dbPool)
	paymentRepo := storage.NewPaymentRepository(dbPool)

	authHandler := &handler.AuthHandler{Repo: userRepo, JWTSecret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL}
	accountHandler := &handler.AccountHandler{Repo: accountRepo}
	transactionHandler := &handler.TransactionHandler{Repo: ledgerRepo}
	paymentHandler := &handler.PaymentHandler{Repo: paymentRepo}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	// 6. Routes
	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	protected := middleware.Protected(cfg.JWTSecret)

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

	// Graceful shutdown: stop accepting requests, then close the pool.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("🚀 Server starting", "env", cfg.Env, "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("Server forced to shutdown", "error", err)
		}
	}()

	<-stop
	slog.Info("🛑 Shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	dbPool.Close()
	slog.Info("✅ Database connection closed")

	slog.Info("👋 Server exited successfully")
}
