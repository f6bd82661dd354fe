package admission

import (
	"github.com/openlot/auction-exchange-backend/internal/domain/errors"
)

// Reason identifies why an admission attempt was rejected. The reason
// kind is part of the contract; the human-readable message is not.
type Reason string

const (
	ReasonNullBid               Reason = "NULL_BID"
	ReasonInvalidBid            Reason = "INVALID_BID"
	ReasonTooManyActiveBids     Reason = "TOO_MANY_ACTIVE_BIDS"
	ReasonAuctionNotOpen        Reason = "AUCTION_NOT_OPEN"
	ReasonSelfBid               Reason = "SELF_BID"
	ReasonCurrencyMismatch      Reason = "CURRENCY_MISMATCH"
	ReasonInsufficientAmount    Reason = "INSUFFICIENT_AMOUNT_OR_ALREADY_TOP_BIDDER"
	ReasonNullListing           Reason = "NULL_LISTING"
	ReasonInvalidListing        Reason = "INVALID_LISTING"
	ReasonTooManyAuctions       Reason = "TOO_MANY_AUCTIONS"
	ReasonTooManyConcurrent     Reason = "TOO_MANY_CONCURRENT_AUCTIONS"
	ReasonTooManyInCategory     Reason = "TOO_MANY_CONCURRENT_AUCTIONS_IN_CATEGORY"
	ReasonDuplicateDescription  Reason = "DUPLICATE_DESCRIPTION"
	ReasonRepositoryUnavailable Reason = "REPOSITORY_UNAVAILABLE"
)

// Decision is the outcome of an admission check chain. Every branch of
// the chain produces a definite Decision; nothing is thrown.
type Decision struct {
	Accepted bool
	Reason   Reason
	Err      *errors.AppError
}

// Accept returns an accepting decision.
func Accept() Decision {
	return Decision{Accepted: true}
}

// Reject returns a rejecting decision with the given reason and a
// matching AppError for transport layers.
func Reject(reason Reason, message string) Decision {
	return Decision{
		Accepted: false,
		Reason:   reason,
		Err:      appErrorFor(reason, message),
	}
}

// RejectWithCause is Reject carrying the underlying failure, used for
// repository and limits-provider errors.
func RejectWithCause(reason Reason, message string, cause error) Decision {
	d := Reject(reason, message)
	d.Err = d.Err.WithCause(cause)
	return d
}

func appErrorFor(reason Reason, message string) *errors.AppError {
	switch reason {
	case ReasonNullBid, ReasonInvalidBid, ReasonNullListing, ReasonInvalidListing:
		return errors.NewValidationError(string(reason), message)
	case ReasonTooManyActiveBids, ReasonTooManyAuctions, ReasonTooManyConcurrent, ReasonTooManyInCategory:
		return errors.NewQuotaError(string(reason), message)
	case ReasonAuctionNotOpen, ReasonSelfBid, ReasonCurrencyMismatch, ReasonInsufficientAmount:
		return errors.NewBusinessError(string(reason), message)
	case ReasonDuplicateDescription:
		return errors.NewContentError(string(reason), message)
	case ReasonRepositoryUnavailable:
		return errors.NewExternalError("repository", message)
	default:
		return errors.NewInternalError(message)
	}
}
