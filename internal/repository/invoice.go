// Package repository implements the domain repositories over the document
// store. Every operation is a full read-modify-write of the one persisted
// document, which bounds write cost by document size; the target scale is
// tens to low hundreds of records.
package repository

import (
	"context"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/invoicepad/invoicepad/internal/billing"
	"github.com/invoicepad/invoicepad/internal/document"
	"github.com/invoicepad/invoicepad/internal/domain/invoice"
	ierr "github.com/invoicepad/invoicepad/internal/errors"
	"github.com/invoicepad/invoicepad/internal/logger"
	"github.com/invoicepad/invoicepad/internal/types"
)

type invoiceRepository struct {
	store *document.Store
	log   *logger.Logger
}

// NewInvoiceRepository creates an invoice repository backed by the document
// store
func NewInvoiceRepository(store *document.Store, log *logger.Logger) invoice.Repository {
	return &invoiceRepository{
		store: store,
		log:   log,
	}
}

func (r *invoiceRepository) List(ctx context.Context) ([]*invoice.Invoice, error) {
	doc, err := r.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Invoices, nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	doc, err := r.store.Get(ctx)
	if err != nil {
		return nil, err
	}

	inv, found := lo.Find(doc.Invoices, func(in *invoice.Invoice) bool {
		return in.ID == id
	})
	if !found {
		return nil, ierr.NewError("invoice not found").
			WithHintf("No invoice with id %s", id).
			Mark(ierr.ErrNotFound)
	}
	return inv, nil
}

// Save upserts an invoice. The incoming record is validated before anything
// is read or written, so an invalid record never causes a partial write.
// On update, fields the caller left unset are preserved from the stored
// record; on insert, a fresh id and created date are stamped when absent.
// Derived amounts are always recomputed here: this is the only mutation
// path, which keeps the persisted totals consistent with the line items.
func (r *invoiceRepository) Save(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	if inv == nil {
		return nil, ierr.NewError("invoice validation failed").
			WithHint("invoice is required").
			Mark(ierr.ErrValidation)
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	doc, err := r.store.Get(ctx)
	if err != nil {
		return nil, err
	}

	record := *inv

	idx := -1
	if record.ID != "" {
		_, idx, _ = lo.FindIndexOf(doc.Invoices, func(in *invoice.Invoice) bool {
			return in.ID == record.ID
		})
	}

	if idx >= 0 {
		record.Merge(doc.Invoices[idx])
	} else {
		if record.ID == "" {
			record.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE)
		}
		if record.Number == "" {
			record.Number = types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE)
		}
		if record.CreatedDate == "" {
			record.CreatedDate = time.Now().Format(billing.DateLayout)
		}
		if record.Status == "" {
			record.Status = types.InvoiceStatusDraft
		}
	}

	calculated := billing.Recalculate(&record)
	calculated.UpdatedAt = time.Now().UTC()

	if idx >= 0 {
		doc.Invoices[idx] = calculated
	} else {
		doc.Invoices = append(doc.Invoices, calculated)
	}

	if err := r.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	return calculated, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	doc, err := r.store.Get(ctx)
	if err != nil {
		return err
	}

	remaining := lo.Filter(doc.Invoices, func(in *invoice.Invoice, _ int) bool {
		return in.ID != id
	})
	if len(remaining) == len(doc.Invoices) {
		return ierr.NewError("invoice not found").
			WithHintf("No invoice with id %s", id).
			Mark(ierr.ErrNotFound)
	}

	doc.Invoices = remaining
	return r.store.Save(ctx, doc)
}

// Search performs a case-insensitive substring match across invoice id,
// client name, client email, status, and every line item description. Any
// one match includes the invoice; stored order is preserved. An empty
// query returns all invoices unfiltered.
func (r *invoiceRepository) Search(ctx context.Context, query string) ([]*invoice.Invoice, error) {
	invoices, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return invoices, nil
	}

	return lo.Filter(invoices, func(in *invoice.Invoice, _ int) bool {
		return invoiceMatches(in, q)
	}), nil
}

func invoiceMatches(in *invoice.Invoice, q string) bool {
	fields := []string{
		in.ID,
		in.Client.Name,
		in.Client.Email,
		in.Status.String(),
	}
	for _, item := range in.Items {
		fields = append(fields, item.Description)
	}

	return lo.SomeBy(fields, func(f string) bool {
		return strings.Contains(strings.ToLower(f), q)
	})
}
