package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domainerrors "github.com/openlot/auction-exchange-backend/internal/domain/errors"
	"github.com/openlot/auction-exchange-backend/internal/domain/listing"
	"github.com/openlot/auction-exchange-backend/internal/domain/values"
	"github.com/openlot/auction-exchange-backend/internal/service/admission"
)

// listingRepository implements admission.ListingRepository on PostgreSQL.
type listingRepository struct {
	db         DBTX
	categories *CategoryRepository
}

// DBTX is the subset of database/sql used by the repositories, so they
// run identically against *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func NewListingRepository(db DBTX) admission.ListingRepository {
	return &listingRepository{db: db, categories: NewCategoryRepository(db)}
}

const listingColumns = `
	id, name, description, category_id, seller_id,
	starting_price, currency, created_at, start_at, end_at, terminates_at
`

// GetByID retrieves a listing and its category chain.
func (r *listingRepository) GetByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	l, categoryID, err := r.scanListing(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainerrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	l.Category, err = r.categories.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	return l, nil
}

// BySeller returns the seller's listings that have not yet terminated,
// including listings that have not started.
func (r *listingRepository) BySeller(ctx context.Context, sellerID uuid.UUID) ([]*listing.Listing, error) {
	query := `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE seller_id = $1 AND terminates_at > now()
		ORDER BY start_at
	`

	rows, err := r.db.QueryContext(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query seller listings: %w", err)
	}
	defer rows.Close()

	var out []*listing.Listing
	categories := make(map[uuid.UUID]*listing.Category)
	for rows.Next() {
		l, categoryID, err := r.scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}

		if cached, ok := categories[categoryID]; ok {
			l.Category = cached
		} else {
			l.Category, err = r.categories.GetCategory(ctx, categoryID)
			if err != nil {
				return nil, err
			}
			categories[categoryID] = l.Category
		}

		out = append(out, l)
	}

	return out, rows.Err()
}

// ActiveDescriptions returns descriptions of all listings still open
// for bidding, optionally excluding one listing.
func (r *listingRepository) ActiveDescriptions(ctx context.Context, excluding uuid.UUID) ([]string, error) {
	query := `
		SELECT description FROM listings
		WHERE terminates_at > now() AND ($1 = '00000000-0000-0000-0000-000000000000'::uuid OR id <> $1)
	`

	rows, err := r.db.QueryContext(ctx, query, excluding)
	if err != nil {
		return nil, fmt.Errorf("failed to query descriptions: %w", err)
	}
	defer rows.Close()

	var descriptions []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan description: %w", err)
		}
		descriptions = append(descriptions, d)
	}

	return descriptions, rows.Err()
}

// Store inserts a new listing.
func (r *listingRepository) Store(ctx context.Context, l *listing.Listing) error {
	query := `
		INSERT INTO listings (
			id, name, description, category_id, seller_id,
			starting_price, currency, created_at, start_at, end_at, terminates_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.Name, l.Description, l.Category.ID, l.SellerID,
		l.StartingPrice.Amount().String(), l.Currency(),
		l.CreatedAt, l.StartAt, l.EndAt, l.TerminatesAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store listing: %w", err)
	}

	return nil
}

// Update rewrites the mutable listing fields. Creation and end
// timestamps are immutable and deliberately absent from the SET list.
func (r *listingRepository) Update(ctx context.Context, l *listing.Listing) error {
	query := `
		UPDATE listings
		SET name = $2, description = $3, category_id = $4,
		    starting_price = $5, currency = $6, start_at = $7, terminates_at = $8
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		l.ID, l.Name, l.Description, l.Category.ID,
		l.StartingPrice.Amount().String(), l.Currency(), l.StartAt, l.TerminatesAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return domainerrors.ErrListingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *listingRepository) scanListing(row rowScanner) (*listing.Listing, uuid.UUID, error) {
	var l listing.Listing
	var categoryID uuid.UUID
	var amount, currency string

	err := row.Scan(
		&l.ID, &l.Name, &l.Description, &categoryID, &l.SellerID,
		&amount, &currency, &l.CreatedAt, &l.StartAt, &l.EndAt, &l.TerminatesAt,
	)
	if err != nil {
		return nil, uuid.Nil, err
	}

	l.StartingPrice, err = values.NewMoneyFromString(amount, currency)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("invalid stored price: %w", err)
	}

	return &l, categoryID, nil
}

