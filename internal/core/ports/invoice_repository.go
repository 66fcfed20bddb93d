package ports

import (
	"context"

	"github.com/swapdash/dashboard/internal/core/domain"
)

// InvoiceChanges carries the mutable fields of an invoice.
type InvoiceChanges struct {
	CustomerID string
	Amount     int64 // cents
	Status     domain.InvoiceStatus
}

// InvoiceRepository defines persistence operations for invoices. Each method
// maps to a single parameterised statement.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	// Update returns domain.ErrInvoiceNotFound when no row has the id.
	Update(ctx context.Context, id string, changes InvoiceChanges) error
	// Delete removes the invoice. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Invoice, error)
	// List returns all invoices, newest date first.
	List(ctx context.Context) ([]*domain.Invoice, error)
}
