package invoice

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/invoicepad/invoicepad/internal/errors"
	"github.com/invoicepad/invoicepad/internal/types"
	"github.com/invoicepad/invoicepad/internal/validator"
)

// Client is the party an invoice is billed to
type Client struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty"`
}

// LineItem is a single billable line on an invoice. Amount is derived from
// Quantity and Rate and is never independently authoritative.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// Validate validates the line item
func (li *LineItem) Validate() error {
	if li.Quantity.IsNegative() {
		return ierr.NewError("line item validation failed").
			WithHint("quantity must be non negative").
			Mark(ierr.ErrValidation)
	}

	if li.Rate.IsNegative() {
		return ierr.NewError("line item validation failed").
			WithHint("rate must be non negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// Invoice represents the invoice domain model. The JSON field names match
// the persisted document layout exactly; documents written by earlier
// versions of the application unmarshal unchanged.
type Invoice struct {
	ID          string              `json:"id"`
	Number      string              `json:"number,omitempty"`
	CreatedDate string              `json:"createdDate"`
	DueDate     string              `json:"dueDate,omitempty"`
	Status      types.InvoiceStatus `json:"status"`
	Client      Client              `json:"client"`
	Items       []LineItem          `json:"items"`
	Subtotal    decimal.Decimal     `json:"subtotal"`
	TaxRate     decimal.Decimal     `json:"taxRate"`
	TaxAmount   decimal.Decimal     `json:"taxAmount"`
	Total       decimal.Decimal     `json:"total"`
	Notes       string              `json:"notes,omitempty"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// Validate checks the invariants that must hold before an invoice may be
// persisted: a client with a non-empty name and at least one line item.
func (i *Invoice) Validate() error {
	if strings.TrimSpace(i.Client.Name) == "" {
		return ierr.NewError("invoice validation failed").
			WithHint("client name is required").
			Mark(ierr.ErrValidation)
	}

	if err := validator.ValidateStruct(i.Client); err != nil {
		return err
	}

	if len(i.Items) == 0 {
		return ierr.NewError("invoice validation failed").
			WithHint("an invoice needs at least one line item").
			Mark(ierr.ErrValidation)
	}

	for idx := range i.Items {
		if err := i.Items[idx].Validate(); err != nil {
			return err
		}
	}

	if i.Status != "" {
		if err := i.Status.Validate(); err != nil {
			return err
		}
	}

	if i.TaxRate.IsNegative() {
		return ierr.NewError("invoice validation failed").
			WithHint("tax rate must be non negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// Merge applies the incoming invoice onto an existing record. Identity and
// creation fields are preserved when the incoming record leaves them unset;
// everything the caller set replaces the stored value wholesale. Derived
// amounts are not merged here because the save path recalculates them.
func (i *Invoice) Merge(existing *Invoice) {
	if i.ID == "" {
		i.ID = existing.ID
	}
	if i.Number == "" {
		i.Number = existing.Number
	}
	if i.CreatedDate == "" {
		i.CreatedDate = existing.CreatedDate
	}
	if i.DueDate == "" {
		i.DueDate = existing.DueDate
	}
	if i.Status == "" {
		i.Status = existing.Status
	}
	if i.Client == (Client{}) {
		i.Client = existing.Client
	}
	if i.Items == nil {
		i.Items = existing.Items
	}
	if i.Notes == "" {
		i.Notes = existing.Notes
	}
}
