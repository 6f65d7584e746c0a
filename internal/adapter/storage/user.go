package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amanik/pesabank/internal/core/domain"
	"github.com/amanik/pesabank/internal/core/security"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser registers a user and opens their zero-balance account in one
// transaction. Either both rows exist afterwards or neither does.
func (r *UserRepository) CreateUser(ctx context.Context, email, passwordHash, fullName string) (*domain.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	var user domain.User
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name)
		VALUES ($1, $2, $3)
		RETURNING id, email, full_name, created_at
	`, email, passwordHash, fullName).Scan(&user.ID, &user.Email, &user.FullName, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the race to a concurrent registration with the same email.
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Account numbers are random; re-roll if we collide with an existing
	// one. The check happens before the insert because a failed insert
	// would abort the whole transaction.
	var number string
	for attempt := 0; ; attempt++ {
		n, err := security.GenerateAccountNumber()
		if err != nil {
			return nil, err
		}
		var taken bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`, n).Scan(&taken); err != nil {
			return nil, err
		}
		if !taken {
			number = n
			break
		}
		if attempt >= 3 {
			return nil, fmt.Errorf("failed to allocate account number")
		}
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO accounts (user_id, account_number, balance)
		VALUES ($1, $2, 0)
	`, user.ID, number); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail returns the user including the password hash, for login.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, full_name, created_at
		FROM users WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
