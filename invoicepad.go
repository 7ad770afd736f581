// Package invoicepad assembles the local-first invoice manager: a sqlite
// backed key-value store holding one JSON document of invoices and
// settings, repositories over that document, and the calculation engine
// consumers use to derive invoice amounts.
package invoicepad

import (
	"context"

	"github.com/invoicepad/invoicepad/internal/cache"
	"github.com/invoicepad/invoicepad/internal/config"
	"github.com/invoicepad/invoicepad/internal/document"
	"github.com/invoicepad/invoicepad/internal/domain/invoice"
	"github.com/invoicepad/invoicepad/internal/domain/settings"
	"github.com/invoicepad/invoicepad/internal/export"
	"github.com/invoicepad/invoicepad/internal/kv"
	"github.com/invoicepad/invoicepad/internal/logger"
	"github.com/invoicepad/invoicepad/internal/repository"
)

// App wires the storage stack and exposes the repositories a presentation
// layer consumes. Construction probes storage; when the probe fails the
// app keeps working in degraded, non-persistent mode.
type App struct {
	Config   *config.Configuration
	Logger   *logger.Logger
	Invoices invoice.Repository
	Settings settings.Repository
	Themes   settings.ThemeRepository
	Exporter *export.Exporter

	store kv.Store
}

// New builds an App from configuration and runs first-load initialization
// of the persisted document.
func New(ctx context.Context, cfg *config.Configuration) (*App, error) {
	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	var store kv.Store
	sqlite, err := kv.NewSQLiteStore(cfg.Storage.Path, cfg.Storage.QuotaBytes)
	if err != nil {
		log.Warnw("failed to open storage, continuing without persistence", "error", err)
		store = kv.NewNoopStore(log)
	} else {
		store = kv.EnsureAvailable(ctx, sqlite, log)
		if store != kv.Store(sqlite) {
			sqlite.Close()
		}
	}

	docs := document.NewStore(store, cache.NewInMemoryCache(), log)
	if err := docs.Init(ctx); err != nil {
		return nil, err
	}

	invoices := repository.NewInvoiceRepository(docs, log)
	settingsRepo := repository.NewSettingsRepository(docs, log)

	return &App{
		Config:   cfg,
		Logger:   log,
		Invoices: invoices,
		Settings: settingsRepo,
		Themes:   repository.NewThemeRepository(store, log),
		Exporter: export.NewExporter(invoices, settingsRepo),
		store:    store,
	}, nil
}

// Close releases the underlying storage.
func (a *App) Close() error {
	return a.store.Close()
}
