package listing

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openlot/auction-exchange-backend/internal/domain/validation"
	"github.com/openlot/auction-exchange-backend/internal/domain/values"
)

// Listing is a timed auction for a single product.
//
// CreatedAt and EndAt are immutable once set. TerminatesAt starts equal
// to EndAt and may only be brought forward to close an auction early;
// that adjustment happens upstream, the admission engine only reads it.
type Listing struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    *Category    `json:"category"`
	SellerID    uuid.UUID    `json:"seller_id"`

	StartingPrice values.Money `json:"starting_price"`

	CreatedAt    time.Time `json:"created_at"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	TerminatesAt time.Time `json:"terminates_at"`
}

func NewListing(name, description string, category *Category, sellerID uuid.UUID, startingPrice values.Money, startAt, endAt time.Time) (*Listing, error) {
	l := &Listing{
		ID:            uuid.New(),
		Name:          name,
		Description:   description,
		Category:      category,
		SellerID:      sellerID,
		StartingPrice: startingPrice,
		CreatedAt:     time.Now().UTC(),
		StartAt:       startAt,
		EndAt:         endAt,
		TerminatesAt:  endAt,
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}

	return l, nil
}

// Validate checks field-level rules. Quota and duplicate checks belong
// to the admission engine, not here.
func (l *Listing) Validate() error {
	if l == nil {
		return fmt.Errorf("listing is nil")
	}
	if l.ID == uuid.Nil {
		return fmt.Errorf("listing ID is required")
	}
	if err := validation.ValidateListingName(l.Name); err != nil {
		return err
	}
	if err := validation.ValidateListingDescription(l.Description); err != nil {
		return err
	}
	if err := l.Category.Validate(); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}
	if l.SellerID == uuid.Nil {
		return fmt.Errorf("seller ID is required")
	}
	if l.StartingPrice.Currency() == "" {
		return fmt.Errorf("starting price currency is required")
	}
	if l.StartingPrice.IsNegative() {
		return fmt.Errorf("starting price cannot be negative")
	}
	if l.StartAt.IsZero() || l.EndAt.IsZero() {
		return fmt.Errorf("start and end times are required")
	}
	if l.EndAt.Before(l.StartAt) {
		return fmt.Errorf("end time cannot precede start time")
	}
	if l.TerminatesAt.IsZero() {
		return fmt.Errorf("termination time is required")
	}
	return nil
}

// Currency is the currency bids on this listing must carry.
func (l *Listing) Currency() string {
	return l.StartingPrice.Currency()
}

// OpenAt reports whether the auction accepts bids at t: strictly after
// start, strictly before end, and strictly before early termination.
func (l *Listing) OpenAt(t time.Time) bool {
	if !t.After(l.StartAt) {
		return false
	}
	if !t.Before(l.EndAt) {
		return false
	}
	return t.Before(l.TerminatesAt)
}

// ActiveAt reports whether the listing still occupies a concurrency
// slot at t, i.e. it has not yet terminated.
func (l *Listing) ActiveAt(t time.Time) bool {
	return t.Before(l.TerminatesAt)
}

// Overlaps reports whether two listings' [StartAt, TerminatesAt]
// windows intersect.
func (l *Listing) Overlaps(other *Listing) bool {
	if other == nil {
		return false
	}
	return !l.StartAt.After(other.TerminatesAt) && !other.StartAt.After(l.TerminatesAt)
}

// SameCategory reports whether both listings share a category node.
func (l *Listing) SameCategory(other *Listing) bool {
	if l.Category == nil || other == nil || other.Category == nil {
		return false
	}
	return l.Category.ID == other.Category.ID
}

// Terminate brings the termination time forward to t. It never moves
// the window past the original end.
func (l *Listing) Terminate(t time.Time) error {
	if t.After(l.EndAt) {
		return fmt.Errorf("termination time cannot exceed end time")
	}
	l.TerminatesAt = t
	return nil
}
