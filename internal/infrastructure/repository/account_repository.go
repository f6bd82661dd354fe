package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/openlot/auction-exchange-backend/internal/domain/account"
	domainerrors "github.com/openlot/auction-exchange-backend/internal/domain/errors"
)

// AccountRepository persists marketplace accounts.
type AccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// Store inserts a new account.
func (r *AccountRepository) Store(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (id, email, name, phone_number, standing, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Email, a.Name, a.PhoneNumber, a.Standing, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store account: %w", err)
	}

	return nil
}

// GetByID retrieves an account.
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `
		SELECT id, email, name, phone_number, standing, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var a account.Account
	var phone sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Email, &a.Name, &phone, &a.Standing, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainerrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	a.PhoneNumber = phone.String

	return &a, nil
}
