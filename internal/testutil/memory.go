package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openlot/auction-exchange-backend/internal/domain/account"
	"github.com/openlot/auction-exchange-backend/internal/domain/bid"
	domainerrors "github.com/openlot/auction-exchange-backend/internal/domain/errors"
	"github.com/openlot/auction-exchange-backend/internal/domain/listing"
)

// MemoryStore is an in-memory stand-in for the repository and limits
// provider used by engine and handler tests. Error fields, when set,
// are returned by the corresponding method to simulate outages.
type MemoryStore struct {
	mu sync.Mutex

	Listings map[uuid.UUID]*listing.Listing
	Bids     []*bid.Bid

	LimitsByAccount map[uuid.UUID]account.LimitSet
	DefaultLimits   account.LimitSet

	// ShuffleTail reverses everything after the first element of
	// BidsFor results, to prove callers rely only on the documented
	// top-bid-first contract.
	ShuffleTail bool

	GetListingErr   error
	ListingsErr     error
	DescriptionsErr error
	StoreListingErr error
	UpdateErr       error
	BidsForErr      error
	BidCountErr     error
	StoreBidErr     error
	LimitsErr       error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Listings:        make(map[uuid.UUID]*listing.Listing),
		LimitsByAccount: make(map[uuid.UUID]account.LimitSet),
		DefaultLimits:   account.LimitSet{MaxActiveBids: 100, MaxOpenListings: 100},
	}
}

// AddListing seeds a listing.
func (s *MemoryStore) AddListing(l *listing.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Listings[l.ID] = l
}

// AddBid seeds an accepted bid.
func (s *MemoryStore) AddBid(b *bid.Bid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Bids = append(s.Bids, b)
}

// SetLimits seeds per-account limits.
func (s *MemoryStore) SetLimits(accountID uuid.UUID, limits account.LimitSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LimitsByAccount[accountID] = limits
}

func (s *MemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	if s.GetListingErr != nil {
		return nil, s.GetListingErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.Listings[id]
	if !ok {
		return nil, domainerrors.ErrListingNotFound
	}
	return l, nil
}

func (s *MemoryStore) BySeller(ctx context.Context, sellerID uuid.UUID) ([]*listing.Listing, error) {
	if s.ListingsErr != nil {
		return nil, s.ListingsErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var out []*listing.Listing
	for _, l := range s.Listings {
		if l.SellerID == sellerID && l.ActiveAt(now) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (s *MemoryStore) ActiveDescriptions(ctx context.Context, excluding uuid.UUID) ([]string, error) {
	if s.DescriptionsErr != nil {
		return nil, s.DescriptionsErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var out []string
	for _, l := range s.Listings {
		if l.ID == excluding || !l.ActiveAt(now) {
			continue
		}
		out = append(out, l.Description)
	}
	return out, nil
}

func (s *MemoryStore) Store(ctx context.Context, l *listing.Listing) error {
	if s.StoreListingErr != nil {
		return s.StoreListingErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Listings[l.ID] = l
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, l *listing.Listing) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.Listings[l.ID]; !ok {
		return domainerrors.ErrListingNotFound
	}
	s.Listings[l.ID] = l
	return nil
}

// BidsFor returns bids on the listing sorted by amount descending,
// most recent first among equal amounts, regardless of insertion
// order.
func (s *MemoryStore) BidsFor(ctx context.Context, listingID uuid.UUID) ([]*bid.Bid, error) {
	if s.BidsForErr != nil {
		return nil, s.BidsForErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*bid.Bid
	for _, b := range s.Bids {
		if b.ListingID == listingID {
			out = append(out, b)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		cmp := out[i].Amount.Amount().Cmp(out[j].Amount.Amount())
		if cmp != 0 {
			return cmp > 0
		}
		return out[i].PlacedAt.After(out[j].PlacedAt)
	})

	if s.ShuffleTail && len(out) > 2 {
		tail := out[1:]
		for i, j := 0, len(tail)-1; i < j; i, j = i+1, j-1 {
			tail[i], tail[j] = tail[j], tail[i]
		}
	}

	return out, nil
}

func (s *MemoryStore) ActiveBidCount(ctx context.Context, buyerID uuid.UUID) (int, error) {
	if s.BidCountErr != nil {
		return 0, s.BidCountErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	count := 0
	for _, b := range s.Bids {
		if b.BuyerID != buyerID {
			continue
		}
		l, ok := s.Listings[b.ListingID]
		if ok && l.ActiveAt(now) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) StoreBid(ctx context.Context, b *bid.Bid) error {
	if s.StoreBidErr != nil {
		return s.StoreBidErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Bids = append(s.Bids, b)
	return nil
}

func (s *MemoryStore) Limits(ctx context.Context, accountID uuid.UUID) (account.LimitSet, error) {
	if s.LimitsErr != nil {
		return account.LimitSet{}, s.LimitsErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if limits, ok := s.LimitsByAccount[accountID]; ok {
		return limits, nil
	}
	return s.DefaultLimits, nil
}

// BidRepo adapts the store to the bid repository interface, whose
// Store method name collides with the listing repository's.
type BidRepo struct {
	*MemoryStore
}

func (r BidRepo) Store(ctx context.Context, b *bid.Bid) error {
	return r.StoreBid(ctx, b)
}
