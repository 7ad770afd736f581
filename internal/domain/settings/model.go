package settings

import (
	"github.com/shopspring/decimal"

	ierr "github.com/invoicepad/invoicepad/internal/errors"
)

// Settings holds the issuer profile and billing defaults stored alongside
// the invoices in the persisted document.
type Settings struct {
	// Name is the issuer's display name
	Name string `json:"name,omitempty"`

	// Address is the issuer's billing address
	Address string `json:"address,omitempty"`

	// Logo is an optional encoded image payload
	Logo string `json:"logo,omitempty"`

	// Currency is the ISO 4217 code used for new invoices
	Currency string `json:"currency"`

	// DefaultTaxRate is the tax percentage applied to new invoices
	DefaultTaxRate decimal.Decimal `json:"defaultTaxRate"`
}

// DefaultCurrency is used when no currency has been configured
const DefaultCurrency = "USD"

// Default returns the settings written on first initialization
func Default() *Settings {
	return &Settings{
		Currency:       DefaultCurrency,
		DefaultTaxRate: decimal.Zero,
	}
}

// Validate validates the settings
func (s *Settings) Validate() error {
	if len(s.Currency) != 3 {
		return ierr.NewError("settings validation failed").
			WithHint("currency must be a 3 letter ISO code").
			Mark(ierr.ErrValidation)
	}

	if s.DefaultTaxRate.IsNegative() {
		return ierr.NewError("settings validation failed").
			WithHint("default tax rate must be non negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}
