package settings

import (
	"context"

	"github.com/invoicepad/invoicepad/internal/types"
)

// Repository defines the interface for settings persistence operations
type Repository interface {
	// Get retrieves the stored settings, falling back to defaults
	Get(ctx context.Context) (*Settings, error)

	// Save persists the settings
	Save(ctx context.Context, s *Settings) error
}

// ThemeRepository persists the display-theme preference. The theme lives
// under its own storage key, decoupled from the invoice document.
type ThemeRepository interface {
	// GetTheme retrieves the stored theme, defaulting to light
	GetTheme(ctx context.Context) (types.Theme, error)

	// SaveTheme persists the theme preference
	SaveTheme(ctx context.Context, theme types.Theme) error
}
