// Package export renders the invoice list to an XLSX workbook so records
// can be taken out of the local store for bookkeeping.
package export

import (
	"context"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/invoicepad/invoicepad/internal/billing"
	"github.com/invoicepad/invoicepad/internal/domain/invoice"
	"github.com/invoicepad/invoicepad/internal/domain/settings"
	ierr "github.com/invoicepad/invoicepad/internal/errors"
)

const sheetName = "Invoices"

var headers = []string{
	"Number", "Client", "Email", "Status", "Created", "Due",
	"Subtotal", "Tax", "Total", "Notes", "ID",
}

// Exporter writes invoices to XLSX. It reads through the repositories so
// exported rows always reflect the persisted state.
type Exporter struct {
	invoiceRepo  invoice.Repository
	settingsRepo settings.Repository
}

func NewExporter(invoiceRepo invoice.Repository, settingsRepo settings.Repository) *Exporter {
	return &Exporter{
		invoiceRepo:  invoiceRepo,
		settingsRepo: settingsRepo,
	}
}

// WriteXLSX writes one row per invoice to w, amounts formatted in the
// configured currency. The short invoice number leads each row; the
// storage id trails it so a row can still be traced back to its record.
func (e *Exporter) WriteXLSX(ctx context.Context, w io.Writer) error {
	invoices, err := e.invoiceRepo.List(ctx)
	if err != nil {
		return err
	}

	cfg, err := e.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return ierr.WithError(err).
			WithHint("Unable to build export workbook").
			Mark(ierr.ErrSystem)
	}

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return ierr.WithError(err).
				WithHint("Unable to build export workbook").
				Mark(ierr.ErrSystem)
		}
	}

	for row, inv := range invoices {
		values := []interface{}{
			inv.Number,
			inv.Client.Name,
			inv.Client.Email,
			inv.Status.String(),
			billing.FormatDate(inv.CreatedDate),
			billing.FormatDate(inv.DueDate),
			billing.FormatCurrency(inv.Subtotal, cfg.Currency),
			billing.FormatCurrency(inv.TaxAmount, cfg.Currency),
			billing.FormatCurrency(inv.Total, cfg.Currency),
			inv.Notes,
			inv.ID,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return ierr.WithError(err).
					WithHint("Unable to build export workbook").
					Mark(ierr.ErrSystem)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return ierr.WithError(err).
			WithHint("Unable to write export workbook").
			Mark(ierr.ErrSystem)
	}
	return nil
}
