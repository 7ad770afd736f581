// Package billing is the calculation engine: pure functions that derive the
// amount fields of an invoice from its line items and tax rate, plus the
// currency and date formatting used when invoices are displayed or
// exported. Nothing in this package touches storage.
package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoicepad/invoicepad/internal/domain/invoice"
	"github.com/invoicepad/invoicepad/internal/types"
)

var hundred = decimal.NewFromInt(100)

// DateLayout is the ISO 8601 date form used for createdDate and dueDate
const DateLayout = "2006-01-02"

// NewDraftInvoice returns a fresh unsaved invoice: no id yet, created
// today, draft status, no line items, all amounts zero.
func NewDraftInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		CreatedDate: time.Now().Format(DateLayout),
		Status:      types.InvoiceStatusDraft,
		Items:       []invoice.LineItem{},
	}
}

// NewLineItem returns a fresh line item with quantity 1 and zero rate
func NewLineItem() invoice.LineItem {
	return invoice.LineItem{
		ID:       types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LINE_ITEM),
		Quantity: decimal.NewFromInt(1),
	}
}

// Recalculate returns a copy of the invoice with every derived field
// recomputed: each item's amount from quantity and rate, the subtotal as
// the sum of amounts, the tax amount from the tax rate percentage, and the
// total. It never fails; zero-valued inputs contribute zero.
func Recalculate(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}

	out := *inv
	out.Items = make([]invoice.LineItem, len(inv.Items))
	copy(out.Items, inv.Items)

	subtotal := decimal.Zero
	for idx := range out.Items {
		item := &out.Items[idx]
		item.Amount = item.Quantity.Mul(item.Rate)
		subtotal = subtotal.Add(item.Amount)
	}

	out.Subtotal = subtotal
	out.TaxAmount = subtotal.Mul(out.TaxRate).Div(hundred)
	out.Total = out.Subtotal.Add(out.TaxAmount)
	return &out
}

// FormatCurrency renders an amount with its currency symbol, rounded to the
// currency's minor-unit precision. Deterministic for a fixed currency.
func FormatCurrency(amount decimal.Decimal, code string) string {
	if code == "" {
		code = "USD"
	}
	return types.GetCurrencySymbol(code) + amount.StringFixedBank(types.GetCurrencyPrecision(code))
}

// FormatDate renders an ISO date for display, e.g. "Mar 5, 2026". Absent or
// unparseable input renders as the empty string.
func FormatDate(iso string) string {
	if iso == "" {
		return ""
	}
	for _, layout := range []string{DateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return ""
}
