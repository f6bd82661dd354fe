package rest

import "time"

// CreateAccountRequest is the payload for POST /api/v1/accounts.
// Phone format is checked by the domain validator, not a struct tag.
type CreateAccountRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// PlaceBidRequest is the payload for POST /api/v1/bids.
type PlaceBidRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid"`
	BuyerID   string `json:"buyer_id" validate:"required,uuid"`
	Amount    string `json:"amount" validate:"required"`
	Currency  string `json:"currency" validate:"required,len=3,uppercase"`
}

// CreateListingRequest is the payload for POST /api/v1/listings.
type CreateListingRequest struct {
	Name          string    `json:"name" validate:"required,min=2,max=140"`
	Description   string    `json:"description" validate:"required,min=10,max=10000"`
	CategoryID    string    `json:"category_id" validate:"required,uuid"`
	SellerID      string    `json:"seller_id" validate:"required,uuid"`
	StartingPrice string    `json:"starting_price" validate:"required"`
	Currency      string    `json:"currency" validate:"required,len=3,uppercase"`
	StartAt       time.Time `json:"start_at" validate:"required"`
	EndAt         time.Time `json:"end_at" validate:"required"`
}

// UpdateListingRequest is the payload for PUT /api/v1/listings/{id}.
// Omitted fields keep their stored values.
type UpdateListingRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=2,max=140"`
	Description   *string `json:"description,omitempty" validate:"omitempty,min=10,max=10000"`
	CategoryID    *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
	StartingPrice *string `json:"starting_price,omitempty"`
}
