package document

import (
	"github.com/shopspring/decimal"

	"github.com/invoicepad/invoicepad/internal/domain/invoice"
	"github.com/invoicepad/invoicepad/internal/domain/settings"
	"github.com/invoicepad/invoicepad/internal/types"
)

func init() {
	// amounts persist as plain JSON numbers, matching the documented layout
	decimal.MarshalJSONWithoutQuotes = true
}

// AppDocument is the single persisted aggregate: a schema version tag, the
// full invoice list, and the issuer settings. Every save replaces the whole
// document under one storage key.
type AppDocument struct {
	Version  string             `json:"version"`
	Invoices []*invoice.Invoice `json:"invoices"`
	Settings *settings.Settings `json:"settings"`
}

// Default returns the document written on first initialization
func Default() *AppDocument {
	return &AppDocument{
		Version:  types.SchemaVersion,
		Invoices: []*invoice.Invoice{},
		Settings: settings.Default(),
	}
}

// normalize fills in zero-valued sections so callers never see nil slices
// or a nil settings record
func (d *AppDocument) normalize() {
	if d.Invoices == nil {
		d.Invoices = []*invoice.Invoice{}
	}
	if d.Settings == nil {
		d.Settings = settings.Default()
	}
}
