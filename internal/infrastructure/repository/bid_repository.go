package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/openlot/auction-exchange-backend/internal/domain/bid"
	"github.com/openlot/auction-exchange-backend/internal/domain/values"
	"github.com/openlot/auction-exchange-backend/internal/service/admission"
)

// bidRepository implements admission.BidRepository on PostgreSQL.
type bidRepository struct {
	db DBTX
}

func NewBidRepository(db DBTX) admission.BidRepository {
	return &bidRepository{db: db}
}

// BidsFor returns the accepted bids on a listing, highest amount first.
// The ordering is explicit rather than relying on insertion order; the
// first row is the documented top bid.
func (r *bidRepository) BidsFor(ctx context.Context, listingID uuid.UUID) ([]*bid.Bid, error) {
	query := `
		SELECT id, listing_id, buyer_id, amount, currency, placed_at
		FROM bids
		WHERE listing_id = $1
		ORDER BY amount DESC, placed_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bids: %w", err)
	}
	defer rows.Close()

	var out []*bid.Bid
	for rows.Next() {
		var b bid.Bid
		var amount, currency string

		if err := rows.Scan(&b.ID, &b.ListingID, &b.BuyerID, &amount, &currency, &b.PlacedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}

		b.Amount, err = values.NewMoneyFromString(amount, currency)
		if err != nil {
			return nil, fmt.Errorf("invalid stored amount: %w", err)
		}

		out = append(out, &b)
	}

	return out, rows.Err()
}

// ActiveBidCount counts the buyer's accepted bids on listings whose
// termination time is still in the future.
func (r *bidRepository) ActiveBidCount(ctx context.Context, buyerID uuid.UUID) (int, error) {
	query := `
		SELECT count(*)
		FROM bids b
		JOIN listings l ON l.id = b.listing_id
		WHERE b.buyer_id = $1 AND l.terminates_at > now()
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, buyerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active bids: %w", err)
	}

	return count, nil
}

// Store inserts an accepted bid.
func (r *bidRepository) Store(ctx context.Context, b *bid.Bid) error {
	query := `
		INSERT INTO bids (id, listing_id, buyer_id, amount, currency, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.ListingID, b.BuyerID, b.Amount.Amount().String(), b.Currency(), b.PlacedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store bid: %w", err)
	}

	return nil
}
