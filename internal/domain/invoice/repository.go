package invoice

import "context"

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// List retrieves all invoices in stored order
	List(ctx context.Context) ([]*Invoice, error)

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id string) (*Invoice, error)

	// Save upserts an invoice: create-if-absent, else replace-by-id. The
	// returned invoice carries the stamped identity and derived fields.
	Save(ctx context.Context, inv *Invoice) (*Invoice, error)

	// Delete removes an invoice by ID
	Delete(ctx context.Context, id string) error

	// Search returns invoices matching the query, preserving stored order.
	// An empty query returns all invoices.
	Search(ctx context.Context, query string) ([]*Invoice, error)
}
