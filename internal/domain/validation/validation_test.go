package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "seller@example.com"},
		{name: "valid with plus tag", email: "seller+auctions@example.com"},
		{name: "uppercase normalized", email: "SELLER@EXAMPLE.COM"},
		{name: "empty", email: "", wantErr: true},
		{name: "no at sign", email: "seller.example.com", wantErr: true},
		{name: "no domain", email: "seller@", wantErr: true},
		{name: "too long", email: strings.Repeat("a", 250) + "@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain", input: "Ada Lovelace"},
		{name: "hyphen and apostrophe", input: "Jean-Luc O'Brien"},
		{name: "unicode letters", input: "Søren Kierkegaard"},
		{name: "empty", input: "", wantErr: true},
		{name: "single character", input: "A", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 101), wantErr: true},
		{name: "disallowed symbols", input: "Ada <script>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{name: "empty is optional", phone: ""},
		{name: "e164", phone: "+14155552671"},
		{name: "national with punctuation", phone: "(415) 555-2671 x0"},
		{name: "too short", phone: "555-2671", wantErr: true},
		{name: "letters only", phone: "CALL-ME-MAYBE", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhoneNumber(tt.phone)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateListingName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain title", input: "Vintage mechanical keyboard"},
		{name: "minimum length", input: "ab"},
		{name: "multibyte runes counted as one", input: strings.Repeat("é", ListingNameMaxLength)},
		{name: "empty", input: "", wantErr: true},
		{name: "single rune", input: "a", wantErr: true},
		{name: "over maximum", input: strings.Repeat("a", ListingNameMaxLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateListingName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateListingDescription(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain description", input: "A well preserved mechanical keyboard."},
		{name: "minimum length", input: strings.Repeat("a", ListingDescriptionMinLength)},
		{name: "empty", input: "", wantErr: true},
		{name: "below minimum", input: "too short", wantErr: true},
		{name: "over maximum", input: strings.Repeat("a", ListingDescriptionMaxLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateListingDescription(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
