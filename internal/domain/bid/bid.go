package bid

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openlot/auction-exchange-backend/internal/domain/values"
)

// Bid is an offer on a listing. Bids are immutable once placed; the
// only lifecycle transition is proposed to accepted or rejected, and
// that outcome is recorded by the repository, not on the bid itself.
type Bid struct {
	ID        uuid.UUID    `json:"id"`
	ListingID uuid.UUID    `json:"listing_id"`
	BuyerID   uuid.UUID    `json:"buyer_id"`
	Amount    values.Money `json:"amount"`
	PlacedAt  time.Time    `json:"placed_at"`
}

func New(listingID, buyerID uuid.UUID, amount values.Money) *Bid {
	return &Bid{
		ID:        uuid.New(),
		ListingID: listingID,
		BuyerID:   buyerID,
		Amount:    amount,
		PlacedAt:  time.Now().UTC(),
	}
}

// Validate checks field-level rules on the bid.
func (b *Bid) Validate() error {
	if b == nil {
		return fmt.Errorf("bid is nil")
	}
	if b.ID == uuid.Nil {
		return fmt.Errorf("bid ID is required")
	}
	if b.ListingID == uuid.Nil {
		return fmt.Errorf("listing ID is required")
	}
	if b.BuyerID == uuid.Nil {
		return fmt.Errorf("buyer ID is required")
	}
	if b.Amount.Currency() == "" {
		return fmt.Errorf("currency is required")
	}
	if b.Amount.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}
	if b.PlacedAt.IsZero() {
		return fmt.Errorf("placement time is required")
	}
	return nil
}

// Currency is the bid's currency code.
func (b *Bid) Currency() string {
	return b.Amount.Currency()
}
