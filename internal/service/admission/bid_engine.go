package admission

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/openlot/auction-exchange-backend/internal/domain/bid"
	"github.com/openlot/auction-exchange-backend/internal/domain/errors"
	"github.com/openlot/auction-exchange-backend/internal/domain/listing"
)

// BidEngine decides whether an incoming bid is admitted to its target
// auction. It holds no state between calls; every decision is computed
// from the repository and limits-provider snapshots, with the
// read-check-write tail serialized per listing.
type BidEngine struct {
	bids     BidRepository
	listings ListingRepository
	limits   LimitsProvider
	logger   *zap.Logger

	perListing *keyedMutex
}

func NewBidEngine(bids BidRepository, listings ListingRepository, limits LimitsProvider, logger *zap.Logger) *BidEngine {
	return &BidEngine{
		bids:       bids,
		listings:   listings,
		limits:     limits,
		logger:     logger,
		perListing: newKeyedMutex(),
	}
}

// AdmitBid runs the admission check chain in a fixed order, stopping at
// the first failure. The check order is observable through the reported
// reason and must not be rearranged.
func (e *BidEngine) AdmitBid(ctx context.Context, b *bid.Bid) Decision {
	if b == nil {
		return e.reject(nil, Reject(ReasonNullBid, "bid is required"))
	}

	if err := b.Validate(); err != nil {
		return e.reject(b, RejectWithCause(ReasonInvalidBid, err.Error(), err))
	}

	target, err := e.listings.GetByID(ctx, b.ListingID)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeNotFound) {
			return e.reject(b, RejectWithCause(ReasonInvalidBid, "target listing does not exist", err))
		}
		return e.reject(b, RejectWithCause(ReasonRepositoryUnavailable, "listing lookup failed", err))
	}

	if d := e.checkBidQuota(ctx, b); !d.Accepted {
		return e.reject(b, d)
	}

	if !target.OpenAt(b.PlacedAt) {
		return e.reject(b, Reject(ReasonAuctionNotOpen, "auction is not open for bidding"))
	}

	if b.BuyerID == target.SellerID {
		return e.reject(b, Reject(ReasonSelfBid, "sellers cannot bid on their own listings"))
	}

	if b.Currency() != target.Currency() {
		return e.reject(b, Reject(ReasonCurrencyMismatch,
			fmt.Sprintf("bid currency %s does not match listing currency %s", b.Currency(), target.Currency())))
	}

	// The snapshot read, price check, and store must not interleave
	// with another admission on the same listing.
	e.perListing.Lock(target.ID)
	defer e.perListing.Unlock(target.ID)

	if d := e.checkPrice(ctx, b, target); !d.Accepted {
		return e.reject(b, d)
	}

	if err := e.bids.Store(ctx, b); err != nil {
		return e.reject(b, RejectWithCause(ReasonRepositoryUnavailable, "failed to store bid", err))
	}

	e.logger.Info("bid admitted",
		zap.String("bid_id", b.ID.String()),
		zap.String("listing_id", b.ListingID.String()),
		zap.String("buyer_id", b.BuyerID.String()),
		zap.String("amount", b.Amount.String()))

	return Accept()
}

// checkBidQuota enforces the buyer's active-bid ceiling. Only bids on
// still-open auctions count toward the limit.
func (e *BidEngine) checkBidQuota(ctx context.Context, b *bid.Bid) Decision {
	limits, err := e.limits.Limits(ctx, b.BuyerID)
	if err != nil {
		return RejectWithCause(ReasonRepositoryUnavailable, "limits lookup failed", err)
	}

	active, err := e.bids.ActiveBidCount(ctx, b.BuyerID)
	if err != nil {
		return RejectWithCause(ReasonRepositoryUnavailable, "active bid count failed", err)
	}

	if active >= limits.MaxActiveBids {
		return Reject(ReasonTooManyActiveBids,
			fmt.Sprintf("buyer has %d active bids, limit is %d", active, limits.MaxActiveBids))
	}

	return Accept()
}

// checkPrice enforces the strictly-increasing top bid invariant. With
// no accepted bids yet the starting price is the floor (inclusive);
// otherwise the bid must beat the top bid and come from a different
// buyer.
func (e *BidEngine) checkPrice(ctx context.Context, b *bid.Bid, target *listing.Listing) Decision {
	existing, err := e.bids.BidsFor(ctx, target.ID)
	if err != nil {
		return RejectWithCause(ReasonRepositoryUnavailable, "bid history lookup failed", err)
	}

	if len(existing) == 0 {
		if !b.Amount.GreaterThanOrEqual(target.StartingPrice) {
			return Reject(ReasonInsufficientAmount,
				fmt.Sprintf("bid %s is below starting price %s", b.Amount, target.StartingPrice))
		}
		return Accept()
	}

	top := existing[0]
	if !b.Amount.GreaterThan(top.Amount) {
		return Reject(ReasonInsufficientAmount,
			fmt.Sprintf("bid %s does not beat current top bid %s", b.Amount, top.Amount))
	}
	if b.BuyerID == top.BuyerID {
		return Reject(ReasonInsufficientAmount, "buyer already holds the top bid")
	}

	return Accept()
}

func (e *BidEngine) reject(b *bid.Bid, d Decision) Decision {
	fields := []zap.Field{zap.String("reason", string(d.Reason))}
	if b != nil {
		fields = append(fields,
			zap.String("bid_id", b.ID.String()),
			zap.String("listing_id", b.ListingID.String()),
			zap.String("buyer_id", b.BuyerID.String()))
	}
	if d.Err != nil {
		fields = append(fields, zap.String("detail", d.Err.Message))
	}
	e.logger.Warn("bid rejected", fields...)
	return d
}
