package admission

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlot/auction-exchange-backend/internal/domain/account"
	"github.com/openlot/auction-exchange-backend/internal/domain/bid"
	"github.com/openlot/auction-exchange-backend/internal/domain/listing"
)

// LimitsProvider supplies per-account admission ceilings. Platform-wide
// quotas (K, M, L) are resolved once at startup into Quotas instead of
// being looked up by name per call.
type LimitsProvider interface {
	Limits(ctx context.Context, accountID uuid.UUID) (account.LimitSet, error)
}

// BidRepository is the engine's read/write view of stored bids.
type BidRepository interface {
	// BidsFor returns the accepted bids on a listing ordered highest
	// amount first. The first element, if any, is the current top bid;
	// callers must not assume anything beyond that about the tail.
	BidsFor(ctx context.Context, listingID uuid.UUID) ([]*bid.Bid, error)

	// ActiveBidCount counts the buyer's accepted bids on listings that
	// have not yet terminated.
	ActiveBidCount(ctx context.Context, buyerID uuid.UUID) (int, error)

	Store(ctx context.Context, b *bid.Bid) error
}

// ListingRepository is the engine's read/write view of stored listings.
type ListingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error)

	// BySeller returns the seller's listings whose termination time is
	// still in the future, including not-yet-started ones.
	BySeller(ctx context.Context, sellerID uuid.UUID) ([]*listing.Listing, error)

	// ActiveDescriptions returns descriptions of all active listings,
	// excluding the given listing ID when it is non-nil.
	ActiveDescriptions(ctx context.Context, excluding uuid.UUID) ([]string, error)

	Store(ctx context.Context, l *listing.Listing) error
	Update(ctx context.Context, l *listing.Listing) error
}

// Quotas are the platform-wide admission constants, resolved from
// configuration at startup.
type Quotas struct {
	// MaxConcurrentPerSeller caps overlapping auctions per seller.
	MaxConcurrentPerSeller int

	// MaxConcurrentPerCategory caps overlapping auctions per seller
	// within one category.
	MaxConcurrentPerCategory int

	// MinDescriptionDistance is the smallest edit distance a new
	// description may have to any existing one.
	MinDescriptionDistance int
}
