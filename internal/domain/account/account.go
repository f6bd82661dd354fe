package account

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openlot/auction-exchange-backend/internal/domain/validation"
)

// Account is a marketplace participant. The same account may sell
// listings and bid on other sellers' listings.
type Account struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`

	PhoneNumber string `json:"phone_number,omitempty"`

	// Standing is consulted by billing and moderation, not by admission.
	Standing Standing `json:"standing"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Standing int

const (
	StandingGood Standing = iota
	StandingDelinquent
	StandingSuspended
)

func (s Standing) String() string {
	switch s {
	case StandingGood:
		return "good"
	case StandingDelinquent:
		return "delinquent"
	case StandingSuspended:
		return "suspended"
	default:
		return "unknown"
	}
}

func NewAccount(email, name string) (*Account, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}

	if err := validation.ValidateName(name); err != nil {
		return nil, fmt.Errorf("invalid name: %w", err)
	}

	now := time.Now().UTC()
	return &Account{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		Standing:  StandingGood,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Validate checks field-level rules on an already-constructed account.
func (a *Account) Validate() error {
	if a == nil {
		return fmt.Errorf("account is nil")
	}
	if a.ID == uuid.Nil {
		return fmt.Errorf("account ID is required")
	}
	if err := validation.ValidateEmail(a.Email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidateName(a.Name); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}
	if err := validation.ValidatePhoneNumber(a.PhoneNumber); err != nil {
		return fmt.Errorf("invalid phone number: %w", err)
	}
	return nil
}

// LimitSet holds the per-account admission ceilings resolved by the
// limits provider.
type LimitSet struct {
	MaxActiveBids   int `json:"max_active_bids"`
	MaxOpenListings int `json:"max_open_listings"`
}
