package types

import (
	"github.com/samber/lo"

	ierr "github.com/invoicepad/invoicepad/internal/errors"
)

// Theme is the display theme preference persisted under its own storage key,
// fully decoupled from the invoice document.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) String() string {
	return string(t)
}

func (t Theme) Validate() error {
	allowed := []Theme{ThemeLight, ThemeDark}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid theme").
			WithHint("Please provide a valid theme").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
