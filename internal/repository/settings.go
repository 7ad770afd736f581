package repository

import (
	"context"

	"github.com/invoicepad/invoicepad/internal/document"
	"github.com/invoicepad/invoicepad/internal/domain/settings"
	"github.com/invoicepad/invoicepad/internal/logger"
)

type settingsRepository struct {
	store *document.Store
	log   *logger.Logger
}

// NewSettingsRepository creates a settings repository backed by the
// document store
func NewSettingsRepository(store *document.Store, log *logger.Logger) settings.Repository {
	return &settingsRepository{
		store: store,
		log:   log,
	}
}

func (r *settingsRepository) Get(ctx context.Context) (*settings.Settings, error) {
	doc, err := r.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Settings, nil
}

// Save persists the settings inside the shared document. Storage errors
// propagate unchanged so the caller can show a specific message.
func (r *settingsRepository) Save(ctx context.Context, s *settings.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	doc, err := r.store.Get(ctx)
	if err != nil {
		return err
	}

	doc.Settings = s
	return r.store.Save(ctx, doc)
}
