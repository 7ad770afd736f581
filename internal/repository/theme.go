package repository

import (
	"context"

	"github.com/invoicepad/invoicepad/internal/domain/settings"
	"github.com/invoicepad/invoicepad/internal/kv"
	"github.com/invoicepad/invoicepad/internal/logger"
	"github.com/invoicepad/invoicepad/internal/types"
)

type themeRepository struct {
	kv  kv.Store
	log *logger.Logger
}

// NewThemeRepository creates a repository for the display-theme preference.
// The theme is stored under its own key, independent of the invoice
// document.
func NewThemeRepository(store kv.Store, log *logger.Logger) settings.ThemeRepository {
	return &themeRepository{
		kv:  store,
		log: log,
	}
}

func (r *themeRepository) GetTheme(ctx context.Context) (types.Theme, error) {
	raw, ok, err := r.kv.Get(ctx, types.StorageKeyTheme)
	if err != nil {
		r.log.Warnw("failed to read theme preference, using light", "error", err)
		return types.ThemeLight, nil
	}
	if !ok {
		return types.ThemeLight, nil
	}

	theme := types.Theme(raw)
	if err := theme.Validate(); err != nil {
		r.log.Warnw("stored theme preference is invalid, using light", "value", raw)
		return types.ThemeLight, nil
	}
	return theme, nil
}

func (r *themeRepository) SaveTheme(ctx context.Context, theme types.Theme) error {
	if err := theme.Validate(); err != nil {
		return err
	}
	return r.kv.Set(ctx, types.StorageKeyTheme, theme.String())
}
