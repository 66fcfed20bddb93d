package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/swapdash/dashboard/internal/core/ports"
)

// InvoiceQueries serves the invoice list view from the view cache, falling
// back to the repository on a miss.
type InvoiceQueries struct {
	invoices ports.InvoiceRepository
	cache    ports.ViewCache
	log      zerolog.Logger
}

func NewInvoiceQueries(invoices ports.InvoiceRepository, cache ports.ViewCache, log zerolog.Logger) *InvoiceQueries {
	return &InvoiceQueries{invoices: invoices, cache: cache, log: log}
}

// ListInvoices returns every invoice, newest first.
func (q *InvoiceQueries) ListInvoices(ctx context.Context) ([]ports.InvoiceView, error) {
	var cached []ports.InvoiceView
	hit, err := q.cache.Get(ctx, InvoicesPath, &cached)
	if err != nil {
		q.log.Warn().Err(err).Str("path", InvoicesPath).Msg("view cache read failed")
	} else if hit {
		return cached, nil
	}

	list, err := q.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	views := make([]ports.InvoiceView, len(list))
	for i, inv := range list {
		views[i] = ports.NewInvoiceView(inv)
	}

	if err := q.cache.Set(ctx, InvoicesPath, views); err != nil {
		q.log.Warn().Err(err).Str("path", InvoicesPath).Msg("view cache write failed")
	}
	return views, nil
}

// GetInvoice returns a single invoice for the edit form.
func (q *InvoiceQueries) GetInvoice(ctx context.Context, id string) (*ports.InvoiceView, error) {
	inv, err := q.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice %s: %w", id, err)
	}
	view := ports.NewInvoiceView(inv)
	return &view, nil
}
