package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openlot/auction-exchange-backend/internal/domain/account"
	"github.com/openlot/auction-exchange-backend/internal/domain/bid"
	"github.com/openlot/auction-exchange-backend/internal/domain/listing"
	"github.com/openlot/auction-exchange-backend/internal/domain/values"
	"github.com/openlot/auction-exchange-backend/internal/service/admission"
)

// CategoryStore resolves category IDs for incoming listing payloads.
type CategoryStore interface {
	GetCategory(ctx context.Context, id uuid.UUID) (*listing.Category, error)
}

// AccountStore persists and resolves marketplace accounts.
type AccountStore interface {
	Store(ctx context.Context, a *account.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error)
}

// Handler serves the admission API.
type Handler struct {
	bids       *admission.BidEngine
	listings   *admission.ListingEngine
	repo       admission.ListingRepository
	categories CategoryStore
	accounts   AccountStore
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewHandler(bids *admission.BidEngine, listings *admission.ListingEngine, repo admission.ListingRepository, categories CategoryStore, accounts AccountStore, logger *zap.Logger) *Handler {
	return &Handler{
		bids:       bids,
		listings:   listings,
		repo:       repo,
		categories: categories,
		accounts:   accounts,
		validate:   validator.New(),
		logger:     logger,
	}
}

// CreateAccount handles POST /api/v1/accounts.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	a, err := account.NewAccount(req.Email, req.Name)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	if req.PhoneNumber != "" {
		a.PhoneNumber = req.PhoneNumber
		if err := a.Validate(); err != nil {
			writeValidationError(w, err)
			return
		}
	}

	if err := h.accounts.Store(r.Context(), a); err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("account created", zap.String("account_id", a.ID.String()))
	writeJSON(w, http.StatusCreated, a)
}

// GetAccount handles GET /api/v1/accounts/{id}.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeValidationError(w, err)
		return
	}

	a, err := h.accounts.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

// PlaceBid handles POST /api/v1/bids.
func (h *Handler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	var req PlaceBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	buyerID, err := uuid.Parse(req.BuyerID)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	amount, err := values.NewMoneyFromString(req.Amount, req.Currency)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	b := bid.New(listingID, buyerID, amount)

	decision := h.bids.AdmitBid(r.Context(), b)
	recordDecision("bid", decision.Accepted, string(decision.Reason))
	if !decision.Accepted {
		writeRejection(w, decision)
		return
	}

	writeJSON(w, http.StatusCreated, b)
}

// CreateListing handles POST /api/v1/listings.
func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	sellerID, err := uuid.Parse(req.SellerID)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	price, err := values.NewMoneyFromString(req.StartingPrice, req.Currency)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	category, err := h.categories.GetCategory(r.Context(), categoryID)
	if err != nil {
		writeError(w, err)
		return
	}

	// Field validation happens inside the admission chain so every
	// failure surfaces as a single decision with a reason.
	l := &listing.Listing{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		Category:      category,
		SellerID:      sellerID,
		StartingPrice: price,
		CreatedAt:     time.Now().UTC(),
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		TerminatesAt:  req.EndAt,
	}

	decision := h.listings.AdmitListing(r.Context(), l)
	recordDecision("listing", decision.Accepted, string(decision.Reason))
	if !decision.Accepted {
		writeRejection(w, decision)
		return
	}

	writeJSON(w, http.StatusCreated, l)
}

// UpdateListing handles PUT /api/v1/listings/{id}.
func (h *Handler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeValidationError(w, err)
		return
	}

	var req UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	current, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			writeValidationError(w, err)
			return
		}
		category, err := h.categories.GetCategory(r.Context(), categoryID)
		if err != nil {
			writeError(w, err)
			return
		}
		current.Category = category
	}
	if req.StartingPrice != nil {
		price, err := values.NewMoneyFromString(*req.StartingPrice, current.Currency())
		if err != nil {
			writeValidationError(w, err)
			return
		}
		current.StartingPrice = price
	}

	decision := h.listings.AdmitListingUpdate(r.Context(), current)
	recordDecision("listing", decision.Accepted, string(decision.Reason))
	if !decision.Accepted {
		writeRejection(w, decision)
		return
	}

	writeJSON(w, http.StatusOK, current)
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
