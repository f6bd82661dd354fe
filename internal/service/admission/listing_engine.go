package admission

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openlot/auction-exchange-backend/internal/domain/listing"
)

// ListingEngine decides whether a new or modified listing is admitted,
// enforcing the seller's quota ceilings and the near-duplicate
// description check. The check sequence is serialized per seller.
type ListingEngine struct {
	listings ListingRepository
	limits   LimitsProvider
	quotas   Quotas
	detector *DescriptionDetector
	logger   *zap.Logger

	perSeller *keyedMutex
}

func NewListingEngine(listings ListingRepository, limits LimitsProvider, quotas Quotas, logger *zap.Logger) *ListingEngine {
	return &ListingEngine{
		listings:  listings,
		limits:    limits,
		quotas:    quotas,
		detector:  NewDescriptionDetector(quotas.MinDescriptionDistance),
		logger:    logger,
		perSeller: newKeyedMutex(),
	}
}

// AdmitListing runs the admission chain for a newly created listing.
func (e *ListingEngine) AdmitListing(ctx context.Context, l *listing.Listing) Decision {
	return e.admit(ctx, l, false)
}

// AdmitListingUpdate runs the admission chain for a modified listing.
// The total-listings quota is skipped and the duplicate check excludes
// the listing's own stored description.
func (e *ListingEngine) AdmitListingUpdate(ctx context.Context, l *listing.Listing) Decision {
	return e.admit(ctx, l, true)
}

func (e *ListingEngine) admit(ctx context.Context, l *listing.Listing, update bool) Decision {
	if l == nil {
		return e.reject(nil, Reject(ReasonNullListing, "listing is required"))
	}

	if err := l.Validate(); err != nil {
		return e.reject(l, RejectWithCause(ReasonInvalidListing, err.Error(), err))
	}

	e.perSeller.Lock(l.SellerID)
	defer e.perSeller.Unlock(l.SellerID)

	existing, err := e.listings.BySeller(ctx, l.SellerID)
	if err != nil {
		return e.reject(l, RejectWithCause(ReasonRepositoryUnavailable, "seller listings lookup failed", err))
	}
	if update {
		existing = excludeListing(existing, l.ID)
	}

	if !update {
		if d := e.checkTotalQuota(ctx, l, existing); !d.Accepted {
			return e.reject(l, d)
		}
	}

	if d := e.checkConcurrency(l, existing); !d.Accepted {
		return e.reject(l, d)
	}

	if d := e.checkDescription(ctx, l, update); !d.Accepted {
		return e.reject(l, d)
	}

	if update {
		err = e.listings.Update(ctx, l)
	} else {
		err = e.listings.Store(ctx, l)
	}
	if err != nil {
		return e.reject(l, RejectWithCause(ReasonRepositoryUnavailable, "failed to store listing", err))
	}

	e.logger.Info("listing admitted",
		zap.String("listing_id", l.ID.String()),
		zap.String("seller_id", l.SellerID.String()),
		zap.Bool("update", update))

	return Accept()
}

// checkTotalQuota enforces the seller's ceiling on active plus future
// listings. It applies to creation only.
func (e *ListingEngine) checkTotalQuota(ctx context.Context, l *listing.Listing, existing []*listing.Listing) Decision {
	limits, err := e.limits.Limits(ctx, l.SellerID)
	if err != nil {
		return RejectWithCause(ReasonRepositoryUnavailable, "limits lookup failed", err)
	}

	if len(existing) >= limits.MaxOpenListings {
		return Reject(ReasonTooManyAuctions,
			fmt.Sprintf("seller has %d open listings, limit is %d", len(existing), limits.MaxOpenListings))
	}

	return Accept()
}

// checkConcurrency enforces the platform-wide overlap quotas: at most
// K overlapping auctions per seller, at most M of those in the same
// category.
func (e *ListingEngine) checkConcurrency(l *listing.Listing, existing []*listing.Listing) Decision {
	overlapping := 0
	inCategory := 0
	for _, other := range existing {
		if !l.Overlaps(other) {
			continue
		}
		overlapping++
		if l.SameCategory(other) {
			inCategory++
		}
	}

	if overlapping >= e.quotas.MaxConcurrentPerSeller {
		return Reject(ReasonTooManyConcurrent,
			fmt.Sprintf("seller has %d overlapping auctions, limit is %d", overlapping, e.quotas.MaxConcurrentPerSeller))
	}

	if inCategory >= e.quotas.MaxConcurrentPerCategory {
		return Reject(ReasonTooManyInCategory,
			fmt.Sprintf("seller has %d overlapping auctions in category %q, limit is %d",
				inCategory, l.Category.Name, e.quotas.MaxConcurrentPerCategory))
	}

	return Accept()
}

func (e *ListingEngine) checkDescription(ctx context.Context, l *listing.Listing, update bool) Decision {
	excluding := uuid.Nil
	if update {
		excluding = l.ID
	}

	corpus, err := e.listings.ActiveDescriptions(ctx, excluding)
	if err != nil {
		return RejectWithCause(ReasonRepositoryUnavailable, "description lookup failed", err)
	}

	if e.detector.TooSimilar(l.Description, corpus) {
		return Reject(ReasonDuplicateDescription,
			fmt.Sprintf("description is within edit distance %d of an active listing", e.quotas.MinDescriptionDistance))
	}

	return Accept()
}

// excludeListing copies rather than reslicing; the input may be backed
// by repository-owned storage.
func excludeListing(listings []*listing.Listing, id uuid.UUID) []*listing.Listing {
	out := make([]*listing.Listing, 0, len(listings))
	for _, l := range listings {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}

func (e *ListingEngine) reject(l *listing.Listing, d Decision) Decision {
	fields := []zap.Field{zap.String("reason", string(d.Reason))}
	if l != nil {
		fields = append(fields,
			zap.String("listing_id", l.ID.String()),
			zap.String("seller_id", l.SellerID.String()))
	}
	if d.Err != nil {
		fields = append(fields, zap.String("detail", d.Err.Message))
	}
	e.logger.Warn("listing rejected", fields...)
	return d
}
