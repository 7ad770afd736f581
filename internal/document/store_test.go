package document

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicepad/invoicepad/internal/cache"
	"github.com/invoicepad/invoicepad/internal/domain/invoice"
	ierr "github.com/invoicepad/invoicepad/internal/errors"
	"github.com/invoicepad/invoicepad/internal/kv"
	"github.com/invoicepad/invoicepad/internal/logger"
	"github.com/invoicepad/invoicepad/internal/types"
)

func newTestStore(t *testing.T) (*Store, *kv.MemoryStore) {
	t.Helper()
	log, err := logger.NewLogger("info")
	require.NoError(t, err)

	mem := kv.NewMemoryStore(0)
	return NewStore(mem, cache.NewInMemoryCache(), log), mem
}

func TestGetAbsentReturnsDefaultsWithoutPersisting(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore(t)

	doc, err := store.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, types.SchemaVersion, doc.Version)
	assert.Empty(t, doc.Invoices)
	assert.Equal(t, "USD", doc.Settings.Currency)
	assert.Equal(t, 0, mem.Len(), "a missing document must not be written back by a read")
}

func TestGetCorruptedFallsBackWithoutOverwriting(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore(t)

	const corrupted = `{"version":"1.0","invoices":[{{`
	require.NoError(t, mem.Set(ctx, types.StorageKeyDocument, corrupted))

	doc, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Invoices)

	raw, ok, err := mem.Get(ctx, types.StorageKeyDocument)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, corrupted, raw, "corrupted blob must stay recoverable")
}

func TestGetPropagatesReadError(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore(t)

	require.NoError(t, mem.Set(ctx, types.StorageKeyDocument, `{"version":"1.0"}`))
	mem.FailReads(errors.New("storage backend unavailable"))

	doc, err := store.Get(ctx)
	require.Error(t, err, "a failed read must not be mistaken for an empty store")
	assert.Nil(t, doc)
	assert.True(t, ierr.IsStoreUnavailable(err))
}

func TestInitWritesDefaultOnFirstLoad(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore(t)

	require.NoError(t, store.Init(ctx))
	assert.Equal(t, 1, mem.Len())

	doc, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.SchemaVersion, doc.Version)
}

func TestInitStampsMissingVersion(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore(t)

	seed := `{"invoices":[{"id":"inv_1","client":{"name":"Acme"},"items":[{"id":"li_1","description":"Hosting","quantity":1,"rate":20,"amount":20}],"status":"draft"}],"settings":{"currency":"USD","defaultTaxRate":0}}`
	require.NoError(t, mem.Set(ctx, types.StorageKeyDocument, seed))

	require.NoError(t, store.Init(ctx))

	doc, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.SchemaVersion, doc.Version)
	require.Len(t, doc.Invoices, 1, "existing records survive the version stamp")
	assert.Equal(t, "Acme", doc.Invoices[0].Client.Name)
}

func TestInitLeavesCorruptedBlobUntouched(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore(t)

	const corrupted = `not json at all`
	require.NoError(t, mem.Set(ctx, types.StorageKeyDocument, corrupted))

	require.NoError(t, store.Init(ctx))

	raw, ok, err := mem.Get(ctx, types.StorageKeyDocument)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, corrupted, raw)
}

func TestSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	doc := Default()
	doc.Invoices = append(doc.Invoices, &invoice.Invoice{
		ID:     "inv_1",
		Client: invoice.Client{Name: "Acme"},
		Items: []invoice.LineItem{
			{ID: "li_1", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(30), Amount: decimal.NewFromInt(60)},
		},
		Status: types.InvoiceStatusDraft,
	})
	require.NoError(t, store.Save(ctx, doc))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	require.Len(t, got.Invoices, 1)
	assert.Equal(t, "Acme", got.Invoices[0].Client.Name)
	assert.True(t, got.Invoices[0].Items[0].Amount.Equal(decimal.NewFromInt(60)))
}

func TestAmountsPersistAsPlainNumbers(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore(t)

	doc := Default()
	doc.Invoices = append(doc.Invoices, &invoice.Invoice{
		ID:     "inv_1",
		Client: invoice.Client{Name: "Acme"},
		Items: []invoice.LineItem{
			{ID: "li_1", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromFloat(19.99), Amount: decimal.NewFromFloat(19.99)},
		},
		Subtotal: decimal.NewFromFloat(19.99),
		Total:    decimal.NewFromFloat(19.99),
	})
	require.NoError(t, store.Save(ctx, doc))

	raw, ok, err := mem.Get(ctx, types.StorageKeyDocument)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"rate":19.99`)
	assert.NotContains(t, raw, `"rate":"19.99"`)
}

func TestExpireCacheForcesStorageRead(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore(t)
	require.NoError(t, store.Init(ctx))

	// prime the cache
	_, err := store.Get(ctx)
	require.NoError(t, err)

	// mutate the backing store behind the cache
	seed := `{"version":"1.0","invoices":[],"settings":{"name":"Changed","currency":"USD","defaultTaxRate":0}}`
	require.NoError(t, mem.Set(ctx, types.StorageKeyDocument, seed))

	cached, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, cached.Settings.Name, "cached payload served until expiry")

	store.ExpireCache(ctx)

	fresh, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Changed", fresh.Settings.Name)
}
