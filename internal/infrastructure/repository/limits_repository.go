package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/openlot/auction-exchange-backend/internal/domain/account"
	"github.com/openlot/auction-exchange-backend/internal/infrastructure/config"
	"github.com/openlot/auction-exchange-backend/internal/service/admission"
)

// limitsRepository resolves per-account admission ceilings from the
// user_limits table, falling back to the configured defaults when no
// row exists for the account.
type limitsRepository struct {
	db       DBTX
	defaults account.LimitSet
}

func NewLimitsRepository(db DBTX, quota config.QuotaConfig) admission.LimitsProvider {
	return &limitsRepository{
		db: db,
		defaults: account.LimitSet{
			MaxActiveBids:   quota.DefaultMaxActiveBids,
			MaxOpenListings: quota.DefaultMaxOpenListings,
		},
	}
}

func (r *limitsRepository) Limits(ctx context.Context, accountID uuid.UUID) (account.LimitSet, error) {
	query := `
		SELECT max_active_bids, max_open_listings
		FROM user_limits
		WHERE account_id = $1
	`

	var limits account.LimitSet
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(&limits.MaxActiveBids, &limits.MaxOpenListings)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r.defaults, nil
		}
		return account.LimitSet{}, fmt.Errorf("failed to query limits: %w", err)
	}

	return limits, nil
}
