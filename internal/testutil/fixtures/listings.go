package fixtures

import (
	"time"

	"github.com/google/uuid"

	"github.com/openlot/auction-exchange-backend/internal/domain/listing"
	"github.com/openlot/auction-exchange-backend/internal/domain/values"
)

// ListingBuilder builds test listings with sensible defaults: an open
// USD auction that started an hour ago and runs for a day.
type ListingBuilder struct {
	id            uuid.UUID
	name          string
	description   string
	category      *listing.Category
	sellerID      uuid.UUID
	startingPrice values.Money
	startAt       time.Time
	endAt         time.Time
	terminatesAt  time.Time
}

func NewListingBuilder() *ListingBuilder {
	now := time.Now().UTC()
	return &ListingBuilder{
		id:            uuid.New(),
		name:          "Vintage mechanical keyboard",
		description:   "A well preserved mechanical keyboard from the early nineties, fully functional.",
		category:      NewCategory("Electronics"),
		sellerID:      uuid.New(),
		startingPrice: values.MustNewMoneyFromFloat(100, values.USD),
		startAt:       now.Add(-time.Hour),
		endAt:         now.Add(24 * time.Hour),
		terminatesAt:  now.Add(24 * time.Hour),
	}
}

// NewCategory returns a root category node.
func NewCategory(name string) *listing.Category {
	return &listing.Category{ID: uuid.New(), Name: name}
}

func (b *ListingBuilder) WithID(id uuid.UUID) *ListingBuilder {
	b.id = id
	return b
}

func (b *ListingBuilder) WithName(name string) *ListingBuilder {
	b.name = name
	return b
}

func (b *ListingBuilder) WithDescription(description string) *ListingBuilder {
	b.description = description
	return b
}

func (b *ListingBuilder) WithCategory(c *listing.Category) *ListingBuilder {
	b.category = c
	return b
}

func (b *ListingBuilder) WithSeller(sellerID uuid.UUID) *ListingBuilder {
	b.sellerID = sellerID
	return b
}

func (b *ListingBuilder) WithStartingPrice(amount float64, currency string) *ListingBuilder {
	b.startingPrice = values.MustNewMoneyFromFloat(amount, currency)
	return b
}

// WithWindow sets start, end, and termination together.
func (b *ListingBuilder) WithWindow(startAt, endAt time.Time) *ListingBuilder {
	b.startAt = startAt
	b.endAt = endAt
	b.terminatesAt = endAt
	return b
}

// TerminatedAt brings the termination time forward.
func (b *ListingBuilder) TerminatedAt(t time.Time) *ListingBuilder {
	b.terminatesAt = t
	return b
}

func (b *ListingBuilder) Build() *listing.Listing {
	return &listing.Listing{
		ID:            b.id,
		Name:          b.name,
		Description:   b.description,
		Category:      b.category,
		SellerID:      b.sellerID,
		StartingPrice: b.startingPrice,
		CreatedAt:     time.Now().UTC(),
		StartAt:       b.startAt,
		EndAt:         b.endAt,
		TerminatesAt:  b.terminatesAt,
	}
}
