package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openlot/auction-exchange-backend/internal/domain/account"
	domainerrors "github.com/openlot/auction-exchange-backend/internal/domain/errors"
	"github.com/openlot/auction-exchange-backend/internal/domain/listing"
	"github.com/openlot/auction-exchange-backend/internal/service/admission"
	"github.com/openlot/auction-exchange-backend/internal/testutil"
	"github.com/openlot/auction-exchange-backend/internal/testutil/fixtures"
)

type memoryCategoryStore struct {
	categories map[uuid.UUID]*listing.Category
}

func (s *memoryCategoryStore) GetCategory(ctx context.Context, id uuid.UUID) (*listing.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %s not found", id)
	}
	return c, nil
}

type memoryAccountStore struct {
	accounts map[uuid.UUID]*account.Account
}

func (s *memoryAccountStore) Store(ctx context.Context, a *account.Account) error {
	s.accounts[a.ID] = a
	return nil
}

func (s *memoryAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return nil, domainerrors.ErrAccountNotFound
	}
	return a, nil
}

type testAPI struct {
	store      *testutil.MemoryStore
	categories *memoryCategoryStore
	accounts   *memoryAccountStore
	mux        *http.ServeMux
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store := testutil.NewMemoryStore()
	categories := &memoryCategoryStore{categories: make(map[uuid.UUID]*listing.Category)}
	accounts := &memoryAccountStore{accounts: make(map[uuid.UUID]*account.Account)}
	logger := zap.NewNop()

	quotas := admission.Quotas{
		MaxConcurrentPerSeller:   5,
		MaxConcurrentPerCategory: 2,
		MinDescriptionDistance:   10,
	}

	handler := NewHandler(
		admission.NewBidEngine(testutil.BidRepo{MemoryStore: store}, store, store, logger),
		admission.NewListingEngine(store, store, quotas, logger),
		store,
		categories,
		accounts,
		logger,
	)

	api := &testAPI{
		store:      store,
		categories: categories,
		accounts:   accounts,
		mux:        http.NewServeMux(),
	}
	api.mux.HandleFunc("POST /api/v1/accounts", handler.CreateAccount)
	api.mux.HandleFunc("GET /api/v1/accounts/{id}", handler.GetAccount)
	api.mux.HandleFunc("POST /api/v1/bids", handler.PlaceBid)
	api.mux.HandleFunc("POST /api/v1/listings", handler.CreateListing)
	api.mux.HandleFunc("PUT /api/v1/listings/{id}", handler.UpdateListing)
	api.mux.HandleFunc("GET /healthz", handler.Health)
	return api
}

func (a *testAPI) addCategory(c *listing.Category) {
	a.categories.categories[c.ID] = c
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestPlaceBid_Accepted(t *testing.T) {
	api := newTestAPI(t)
	l := fixtures.NewListingBuilder().Build()
	api.store.AddListing(l)

	rec := api.do(t, http.MethodPost, "/api/v1/bids", PlaceBidRequest{
		ListingID: l.ID.String(),
		BuyerID:   uuid.New().String(),
		Amount:    "150.00",
		Currency:  "USD",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID        uuid.UUID `json:"id"`
		ListingID uuid.UUID `json:"listing_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, l.ID, created.ListingID)
	assert.Len(t, api.store.Bids, 1)
}

func TestPlaceBid_RejectionMapping(t *testing.T) {
	now := time.Now().UTC()
	seller := uuid.New()

	open := fixtures.NewListingBuilder().WithSeller(seller).Build()
	closed := fixtures.NewListingBuilder().
		WithWindow(now.Add(-48*time.Hour), now.Add(-24*time.Hour)).
		Build()

	tests := []struct {
		name       string
		req        PlaceBidRequest
		wantStatus int
		wantReason string
	}{
		{
			name: "unknown listing",
			req: PlaceBidRequest{
				ListingID: uuid.New().String(),
				BuyerID:   uuid.New().String(),
				Amount:    "150.00",
				Currency:  "USD",
			},
			wantStatus: http.StatusBadRequest,
			wantReason: string(admission.ReasonInvalidBid),
		},
		{
			name: "auction closed",
			req: PlaceBidRequest{
				ListingID: closed.ID.String(),
				BuyerID:   uuid.New().String(),
				Amount:    "150.00",
				Currency:  "USD",
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: string(admission.ReasonAuctionNotOpen),
		},
		{
			name: "seller bidding on own auction",
			req: PlaceBidRequest{
				ListingID: open.ID.String(),
				BuyerID:   seller.String(),
				Amount:    "150.00",
				Currency:  "USD",
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: string(admission.ReasonSelfBid),
		},
		{
			name: "wrong currency",
			req: PlaceBidRequest{
				ListingID: open.ID.String(),
				BuyerID:   uuid.New().String(),
				Amount:    "150.00",
				Currency:  "EUR",
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: string(admission.ReasonCurrencyMismatch),
		},
		{
			name: "below starting price",
			req: PlaceBidRequest{
				ListingID: open.ID.String(),
				BuyerID:   uuid.New().String(),
				Amount:    "99.99",
				Currency:  "USD",
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: string(admission.ReasonInsufficientAmount),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			api.store.AddListing(open)
			api.store.AddListing(closed)

			rec := api.do(t, http.MethodPost, "/api/v1/bids", tt.req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantReason, decodeError(t, rec).Reason)
			assert.Empty(t, api.store.Bids, "rejected bids must not persist")
		})
	}
}

func TestPlaceBid_BadPayload(t *testing.T) {
	api := newTestAPI(t)

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bids", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		api.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_REQUEST", decodeError(t, rec).Code)
	})

	t.Run("failed field validation", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/api/v1/bids", PlaceBidRequest{
			ListingID: "not-a-uuid",
			BuyerID:   uuid.New().String(),
			Amount:    "150.00",
			Currency:  "usd",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateListing(t *testing.T) {
	now := time.Now().UTC()
	category := fixtures.NewCategory("Electronics")

	validReq := func() CreateListingRequest {
		return CreateListingRequest{
			Name:          "Vintage mechanical keyboard",
			Description:   "A well preserved mechanical keyboard from the early nineties, fully functional.",
			CategoryID:    category.ID.String(),
			SellerID:      uuid.New().String(),
			StartingPrice: "100.00",
			Currency:      "USD",
			StartAt:       now.Add(time.Hour),
			EndAt:         now.Add(48 * time.Hour),
		}
	}

	t.Run("accepted", func(t *testing.T) {
		api := newTestAPI(t)
		api.addCategory(category)

		rec := api.do(t, http.MethodPost, "/api/v1/listings", validReq())

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Len(t, api.store.Listings, 1)

		var created listing.Listing
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, created.EndAt, created.TerminatesAt)
	})

	t.Run("unknown category", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, http.MethodPost, "/api/v1/listings", validReq())

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Empty(t, api.store.Listings)
	})

	t.Run("duplicate description rejected", func(t *testing.T) {
		api := newTestAPI(t)
		api.addCategory(category)

		req := validReq()
		api.store.AddListing(fixtures.NewListingBuilder().
			WithDescription(req.Description).
			Build())

		rec := api.do(t, http.MethodPost, "/api/v1/listings", req)

		assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
		assert.Equal(t, string(admission.ReasonDuplicateDescription), decodeError(t, rec).Reason)
	})

	t.Run("category quota rejected", func(t *testing.T) {
		api := newTestAPI(t)
		api.addCategory(category)

		req := validReq()
		sellerID := uuid.MustParse(req.SellerID)
		for i := 0; i < 2; i++ {
			api.store.AddListing(fixtures.NewListingBuilder().
				WithSeller(sellerID).
				WithCategory(category).
				WithDescription(fmt.Sprintf("Completely unrelated description number %d about antique clocks and barometers.", i)).
				Build())
		}

		rec := api.do(t, http.MethodPost, "/api/v1/listings", req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code, rec.Body.String())
		assert.Equal(t, string(admission.ReasonTooManyInCategory), decodeError(t, rec).Reason)
	})
}

func TestUpdateListing(t *testing.T) {
	newDescription := "A fully restored mechanical keyboard with fresh keycaps and a new cable."

	t.Run("accepted", func(t *testing.T) {
		api := newTestAPI(t)
		l := fixtures.NewListingBuilder().Build()
		api.store.AddListing(l)

		rec := api.do(t, http.MethodPut, "/api/v1/listings/"+l.ID.String(), UpdateListingRequest{
			Description: &newDescription,
		})

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, newDescription, api.store.Listings[l.ID].Description)
	})

	t.Run("keeping own description is not a collision", func(t *testing.T) {
		api := newTestAPI(t)
		l := fixtures.NewListingBuilder().Build()
		api.store.AddListing(l)

		name := "Vintage mechanical keyboard, boxed"
		rec := api.do(t, http.MethodPut, "/api/v1/listings/"+l.ID.String(), UpdateListingRequest{
			Name: &name,
		})

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("unknown listing", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, http.MethodPut, "/api/v1/listings/"+uuid.New().String(), UpdateListingRequest{
			Description: &newDescription,
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, http.MethodPut, "/api/v1/listings/not-a-uuid", UpdateListingRequest{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateAccount(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, http.MethodPost, "/api/v1/accounts", CreateAccountRequest{
			Email:       "seller@example.com",
			Name:        "Ada Lovelace",
			PhoneNumber: "+14155552671",
		})

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var created account.Account
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "seller@example.com", created.Email)
		assert.Equal(t, account.StandingGood, created.Standing)

		stored, ok := api.accounts.accounts[created.ID]
		require.True(t, ok, "account must persist")
		assert.Equal(t, "+14155552671", stored.PhoneNumber)
	})

	t.Run("rejected payloads", func(t *testing.T) {
		tests := []struct {
			name string
			req  CreateAccountRequest
		}{
			{
				name: "invalid email",
				req:  CreateAccountRequest{Email: "not-an-email", Name: "Ada Lovelace"},
			},
			{
				name: "name too short",
				req:  CreateAccountRequest{Email: "seller@example.com", Name: "A"},
			},
			{
				name: "invalid phone",
				req: CreateAccountRequest{
					Email:       "seller@example.com",
					Name:        "Ada Lovelace",
					PhoneNumber: "12",
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				api := newTestAPI(t)

				rec := api.do(t, http.MethodPost, "/api/v1/accounts", tt.req)

				assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
				assert.Equal(t, "INVALID_REQUEST", decodeError(t, rec).Code)
				assert.Empty(t, api.accounts.accounts)
			})
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		api := newTestAPI(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		api.mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetAccount(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		api := newTestAPI(t)
		a, err := account.NewAccount("seller@example.com", "Ada Lovelace")
		require.NoError(t, err)
		api.accounts.accounts[a.ID] = a

		rec := api.do(t, http.MethodGet, "/api/v1/accounts/"+a.ID.String(), nil)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got account.Account
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, a.ID, got.ID)
		assert.Equal(t, a.Email, got.Email)
	})

	t.Run("unknown id", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, http.MethodGet, "/api/v1/accounts/"+uuid.New().String(), nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(t, http.MethodGet, "/api/v1/accounts/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
