package fixtures

import (
	"time"

	"github.com/google/uuid"

	"github.com/openlot/auction-exchange-backend/internal/domain/bid"
	"github.com/openlot/auction-exchange-backend/internal/domain/listing"
	"github.com/openlot/auction-exchange-backend/internal/domain/values"
)

// BidBuilder builds test bids. Defaults target nothing in particular;
// use On to aim at a listing with a matching currency.
type BidBuilder struct {
	id        uuid.UUID
	listingID uuid.UUID
	buyerID   uuid.UUID
	amount    values.Money
	placedAt  time.Time
}

func NewBidBuilder() *BidBuilder {
	return &BidBuilder{
		id:        uuid.New(),
		listingID: uuid.New(),
		buyerID:   uuid.New(),
		amount:    values.MustNewMoneyFromFloat(150, values.USD),
		placedAt:  time.Now().UTC(),
	}
}

// On targets the bid at a listing, adopting its currency.
func (b *BidBuilder) On(l *listing.Listing) *BidBuilder {
	b.listingID = l.ID
	b.amount = values.MustNewMoneyFromFloat(b.amount.ToFloat64(), l.Currency())
	return b
}

func (b *BidBuilder) WithID(id uuid.UUID) *BidBuilder {
	b.id = id
	return b
}

func (b *BidBuilder) WithBuyer(buyerID uuid.UUID) *BidBuilder {
	b.buyerID = buyerID
	return b
}

func (b *BidBuilder) WithAmount(amount float64, currency string) *BidBuilder {
	b.amount = values.MustNewMoneyFromFloat(amount, currency)
	return b
}

func (b *BidBuilder) PlacedAt(t time.Time) *BidBuilder {
	b.placedAt = t
	return b
}

func (b *BidBuilder) Build() *bid.Bid {
	return &bid.Bid{
		ID:        b.id,
		ListingID: b.listingID,
		BuyerID:   b.buyerID,
		Amount:    b.amount,
		PlacedAt:  b.placedAt,
	}
}
