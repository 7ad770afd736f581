package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/invoicepad/invoicepad/internal/cache"
	"github.com/invoicepad/invoicepad/internal/document"
	"github.com/invoicepad/invoicepad/internal/domain/invoice"
	ierr "github.com/invoicepad/invoicepad/internal/errors"
	"github.com/invoicepad/invoicepad/internal/kv"
	"github.com/invoicepad/invoicepad/internal/logger"
	"github.com/invoicepad/invoicepad/internal/types"
)

type InvoiceRepositorySuite struct {
	suite.Suite
	ctx   context.Context
	store *kv.MemoryStore
	docs  *document.Store
	repo  invoice.Repository
}

func TestInvoiceRepository(t *testing.T) {
	suite.Run(t, new(InvoiceRepositorySuite))
}

func (s *InvoiceRepositorySuite) SetupTest() {
	s.ctx = context.Background()

	log, err := logger.NewLogger("info")
	s.Require().NoError(err)

	s.store = kv.NewMemoryStore(0)
	s.docs = document.NewStore(s.store, cache.NewInMemoryCache(), log)
	s.Require().NoError(s.docs.Init(s.ctx))
	s.repo = NewInvoiceRepository(s.docs, log)
}

func (s *InvoiceRepositorySuite) newInvoice(clientName string, items ...invoice.LineItem) *invoice.Invoice {
	if len(items) == 0 {
		items = []invoice.LineItem{
			{Description: "Consulting", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(150)},
		}
	}
	return &invoice.Invoice{
		Client:  invoice.Client{Name: clientName},
		Items:   items,
		TaxRate: decimal.NewFromFloat(8.5),
	}
}

func (s *InvoiceRepositorySuite) count() int {
	invoices, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	return len(invoices)
}

func (s *InvoiceRepositorySuite) TestListEmpty() {
	invoices, err := s.repo.List(s.ctx)
	s.NoError(err)
	s.Empty(invoices)
}

func (s *InvoiceRepositorySuite) TestSaveAssignsIdentity() {
	saved, err := s.repo.Save(s.ctx, s.newInvoice("Acme"))
	s.Require().NoError(err)

	s.Contains(saved.ID, types.UUID_PREFIX_INVOICE+"_")
	s.True(strings.HasPrefix(saved.Number, types.SHORT_ID_PREFIX_INVOICE), "number = %q", saved.Number)
	s.LessOrEqual(len(saved.Number), 12)
	s.NotEmpty(saved.CreatedDate)
	s.Equal(types.InvoiceStatusDraft, saved.Status)
	s.False(saved.UpdatedAt.IsZero())
}

func (s *InvoiceRepositorySuite) TestSaveRecomputesDerivedFields() {
	inv := s.newInvoice("Acme",
		invoice.LineItem{Description: "Development", Quantity: decimal.NewFromInt(40), Rate: decimal.NewFromInt(75)},
		invoice.LineItem{Description: "Hosting", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(500)},
	)
	// hand-set derived fields must be ignored
	inv.Subtotal = decimal.NewFromInt(1)
	inv.Total = decimal.NewFromInt(1)

	saved, err := s.repo.Save(s.ctx, inv)
	s.Require().NoError(err)

	s.True(saved.Subtotal.Equal(decimal.NewFromInt(3500)), "subtotal = %s", saved.Subtotal)
	s.True(saved.TaxAmount.Equal(decimal.NewFromFloat(297.5)), "taxAmount = %s", saved.TaxAmount)
	s.True(saved.Total.Equal(decimal.NewFromFloat(3797.5)), "total = %s", saved.Total)
}

func (s *InvoiceRepositorySuite) TestRoundTrip() {
	inv := s.newInvoice("Acme")
	inv.Notes = "net 30"
	inv.DueDate = "2026-09-30"

	saved, err := s.repo.Save(s.ctx, inv)
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, saved.ID)
	s.Require().NoError(err)

	s.Equal("Acme", got.Client.Name)
	s.Equal("net 30", got.Notes)
	s.Equal("2026-09-30", got.DueDate)
	s.Len(got.Items, 1)
	s.Equal("Consulting", got.Items[0].Description)
}

func (s *InvoiceRepositorySuite) TestInvariantHoldsForAllListed() {
	for _, name := range []string{"Acme", "Globex", "Initech"} {
		_, err := s.repo.Save(s.ctx, s.newInvoice(name))
		s.Require().NoError(err)
	}

	invoices, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(invoices, 3)

	for _, inv := range invoices {
		itemSum := decimal.Zero
		for _, item := range inv.Items {
			itemSum = itemSum.Add(item.Amount)
		}
		s.True(inv.Subtotal.Equal(itemSum))
		s.True(inv.Total.Equal(inv.Subtotal.Add(inv.TaxAmount)))
	}
}

func (s *InvoiceRepositorySuite) TestSaveRejectsInvalid() {
	_, err := s.repo.Save(s.ctx, s.newInvoice("Acme"))
	s.Require().NoError(err)

	tests := []struct {
		name string
		inv  *invoice.Invoice
	}{
		{"nil invoice", nil},
		{"missing client name", &invoice.Invoice{
			Items: []invoice.LineItem{{Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(10)}},
		}},
		{"no line items", &invoice.Invoice{Client: invoice.Client{Name: "Acme"}}},
		{"negative quantity", &invoice.Invoice{
			Client: invoice.Client{Name: "Acme"},
			Items:  []invoice.LineItem{{Quantity: decimal.NewFromInt(-1), Rate: decimal.NewFromInt(10)}},
		}},
		{"bad email", &invoice.Invoice{
			Client: invoice.Client{Name: "Acme", Email: "not-an-email"},
			Items:  []invoice.LineItem{{Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(10)}},
		}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.repo.Save(s.ctx, tt.inv)
			s.True(ierr.IsValidation(err), "expected validation error, got %v", err)
			s.Equal(1, s.count(), "stored invoice count must not change")
		})
	}
}

func (s *InvoiceRepositorySuite) TestSaveMergePreservesUnsetFields() {
	full := s.newInvoice("Acme")
	full.Notes = "net 30"
	full.DueDate = "2026-09-30"
	full.Status = types.InvoiceStatusPaid

	saved, err := s.repo.Save(s.ctx, full)
	s.Require().NoError(err)

	partial := s.newInvoice("Acme Corp")
	partial.ID = saved.ID
	partial.TaxRate = decimal.Zero

	updated, err := s.repo.Save(s.ctx, partial)
	s.Require().NoError(err)

	s.Equal(saved.ID, updated.ID)
	s.Equal(saved.Number, updated.Number, "unset number must be preserved")
	s.Equal("Acme Corp", updated.Client.Name)
	s.Equal("net 30", updated.Notes, "unset notes must be preserved")
	s.Equal("2026-09-30", updated.DueDate, "unset due date must be preserved")
	s.Equal(types.InvoiceStatusPaid, updated.Status, "unset status must be preserved")
	s.Equal(saved.CreatedDate, updated.CreatedDate)
	// tax rate is not merged: a zero rate is a legal value, so the caller's
	// rate always replaces the stored one
	s.True(updated.TaxRate.IsZero(), "taxRate = %s", updated.TaxRate)
	s.True(updated.TaxAmount.IsZero())
	s.True(updated.Total.Equal(updated.Subtotal))
	s.Equal(1, s.count(), "upsert must not append a second record")
}

func (s *InvoiceRepositorySuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, "inv_missing")
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceRepositorySuite) TestDelete() {
	saved, err := s.repo.Save(s.ctx, s.newInvoice("Acme"))
	s.Require().NoError(err)

	err = s.repo.Delete(s.ctx, "inv_missing")
	s.True(ierr.IsNotFound(err))
	s.Equal(1, s.count())

	s.NoError(s.repo.Delete(s.ctx, saved.ID))
	s.Equal(0, s.count())
}

func (s *InvoiceRepositorySuite) TestSearch() {
	acme := s.newInvoice("Acme",
		invoice.LineItem{Description: "Hosting", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(20)},
	)
	acme.Client.Email = "billing@acme.test"
	_, err := s.repo.Save(s.ctx, acme)
	s.Require().NoError(err)

	_, err = s.repo.Save(s.ctx, s.newInvoice("Globex"))
	s.Require().NoError(err)

	byItem, err := s.repo.Search(s.ctx, "hosting")
	s.Require().NoError(err)
	s.Require().Len(byItem, 1)
	s.Equal("Acme", byItem[0].Client.Name)

	all, err := s.repo.Search(s.ctx, "")
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Acme", all[0].Client.Name, "stored order must be preserved")
	s.Equal("Globex", all[1].Client.Name)

	byName, err := s.repo.Search(s.ctx, "GLOB")
	s.Require().NoError(err)
	s.Require().Len(byName, 1)
	s.Equal("Globex", byName[0].Client.Name)

	byEmail, err := s.repo.Search(s.ctx, "acme.test")
	s.Require().NoError(err)
	s.Len(byEmail, 1)

	byStatus, err := s.repo.Search(s.ctx, "draft")
	s.Require().NoError(err)
	s.Len(byStatus, 2)

	none, err := s.repo.Search(s.ctx, "no such thing")
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *InvoiceRepositorySuite) TestQuotaErrorPropagates() {
	s.store.FailWrites(ierr.NewError("backend rejected write").
		WithHint("storage full, delete some records").
		Mark(ierr.ErrQuotaExceeded))

	_, err := s.repo.Save(s.ctx, s.newInvoice("Acme"))
	s.True(ierr.IsQuotaExceeded(err), "quota must surface to the caller, got %v", err)
}

func (s *InvoiceRepositorySuite) TestWriteErrorPropagates() {
	s.store.FailWrites(ierr.NewError("backend rejected write").
		Mark(ierr.ErrStoreWrite))

	_, err := s.repo.Save(s.ctx, s.newInvoice("Acme"))
	s.True(ierr.IsStoreWrite(err))
}

func (s *InvoiceRepositorySuite) TestReadFailureDoesNotClobberStoredDocument() {
	saved, err := s.repo.Save(s.ctx, s.newInvoice("Acme"))
	s.Require().NoError(err)

	s.docs.ExpireCache(s.ctx)
	s.store.FailReads(ierr.NewError("storage backend unavailable").
		Mark(ierr.ErrStoreUnavailable))

	// writes still work; if the failed read were treated as an empty store,
	// this save would replace the whole document
	_, err = s.repo.Save(s.ctx, s.newInvoice("Globex"))
	s.True(ierr.IsStoreUnavailable(err), "expected unavailable error, got %v", err)

	s.store.FailReads(nil)

	invoices, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(invoices, 1, "stored document must survive the failed read")
	s.Equal(saved.ID, invoices[0].ID)
}

func (s *InvoiceRepositorySuite) TestPersistsAcrossStoreInstances() {
	saved, err := s.repo.Save(s.ctx, s.newInvoice("Acme"))
	s.Require().NoError(err)

	log, err := logger.NewLogger("info")
	s.Require().NoError(err)

	// fresh document store and cache over the same backing kv
	docs := document.NewStore(s.store, cache.NewInMemoryCache(), log)
	repo := NewInvoiceRepository(docs, log)

	got, err := repo.Get(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal("Acme", got.Client.Name)
	s.True(got.Total.Equal(saved.Total))
}
