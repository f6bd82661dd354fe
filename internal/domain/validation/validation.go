package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var (
	// Name validation - allows letters, spaces, hyphens, apostrophes
	nameRegex = regexp.MustCompile(`^[\p{L}\p{N}\s\-'\.]{2,100}$`)

	// Phone number validation - E.164 and common formats
	phoneRegex = regexp.MustCompile(`^(\+?[1-9]\d{0,14}|\d{10,15})$`)
)

// Listing content bounds
const (
	ListingNameMinLength        = 2
	ListingNameMaxLength        = 140
	ListingDescriptionMinLength = 10
	ListingDescriptionMaxLength = 10000
)

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	email = strings.TrimSpace(strings.ToLower(email))

	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}

	if len(email) > 255 {
		return fmt.Errorf("email too long (max 255 characters)")
	}

	return nil
}

// ValidateName validates a display name
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	name = strings.TrimSpace(name)

	if len(name) < 2 {
		return fmt.Errorf("name too short (min 2 characters)")
	}

	if len(name) > 100 {
		return fmt.Errorf("name too long (max 100 characters)")
	}

	if !nameRegex.MatchString(name) {
		return fmt.Errorf("invalid name format")
	}

	return nil
}

// ValidatePhoneNumber validates phone number format
func ValidatePhoneNumber(phone string) error {
	if phone == "" {
		return nil // phone is optional
	}

	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '+' {
			return r
		}
		return -1
	}, phone)

	if !phoneRegex.MatchString(cleaned) {
		return fmt.Errorf("invalid phone number format")
	}

	if len(cleaned) < 10 {
		return fmt.Errorf("phone number too short")
	}

	return nil
}

// ValidateListingName validates an auction listing title
func ValidateListingName(name string) error {
	if name == "" {
		return fmt.Errorf("listing name cannot be empty")
	}

	runes := len([]rune(name))
	if runes < ListingNameMinLength {
		return fmt.Errorf("listing name too short (min %d characters)", ListingNameMinLength)
	}
	if runes > ListingNameMaxLength {
		return fmt.Errorf("listing name too long (max %d characters)", ListingNameMaxLength)
	}

	return nil
}

// ValidateListingDescription validates an auction listing description
func ValidateListingDescription(description string) error {
	if description == "" {
		return fmt.Errorf("description cannot be empty")
	}

	runes := len([]rune(description))
	if runes < ListingDescriptionMinLength {
		return fmt.Errorf("description too short (min %d characters)", ListingDescriptionMinLength)
	}
	if runes > ListingDescriptionMaxLength {
		return fmt.Errorf("description too long (max %d characters)", ListingDescriptionMaxLength)
	}

	return nil
}
