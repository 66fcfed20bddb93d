package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapdash/dashboard/internal/core/domain"
	"github.com/swapdash/dashboard/internal/core/ports"
)

func seededInvoices(repo *stubInvoiceRepo) {
	repo.byID["a"] = &domain.Invoice{ID: "a", CustomerID: "c1", Amount: 4999, Status: domain.InvoicePending, Date: "2024-01-01"}
	repo.byID["b"] = &domain.Invoice{ID: "b", CustomerID: "c2", Amount: 100, Status: domain.InvoicePaid, Date: "2024-02-01"}
}

func TestListInvoices_CachesView(t *testing.T) {
	repo := newStubInvoiceRepo()
	seededInvoices(repo)
	cache := newStubViewCache()
	q := NewInvoiceQueries(repo, cache, discardLogger)

	first, err := q.ListInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "b", first[0].ID, "newest first")
	assert.Equal(t, 49.99, first[1].Amount)

	second, err := q.ListInvoices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.lists, "second read must come from the cache")
}

func TestListInvoices_InvalidationForcesReload(t *testing.T) {
	repo := newStubInvoiceRepo()
	seededInvoices(repo)
	cache := newStubViewCache()
	q := NewInvoiceQueries(repo, cache, discardLogger)
	a := NewInvoiceActions(repo, cache, &stubSessionService{}, discardLogger)

	_, err := q.ListInvoices(context.Background())
	require.NoError(t, err)

	res := a.DeleteInvoice(context.Background(), "a")
	require.Equal(t, ports.Redirected, res.Outcome)

	list, err := q.ListInvoices(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 2, repo.lists)
}

func TestListInvoices_CacheErrorFallsThrough(t *testing.T) {
	repo := newStubInvoiceRepo()
	seededInvoices(repo)
	cache := newStubViewCache()
	cache.getErr = errors.New("redis down")
	q := NewInvoiceQueries(repo, cache, discardLogger)

	list, err := q.ListInvoices(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestListInvoices_RepositoryError(t *testing.T) {
	repo := newStubInvoiceRepo()
	repo.listErr = errors.New("boom")
	q := NewInvoiceQueries(repo, newStubViewCache(), discardLogger)

	_, err := q.ListInvoices(context.Background())
	assert.Error(t, err)
}

func TestGetInvoice(t *testing.T) {
	repo := newStubInvoiceRepo()
	seededInvoices(repo)
	q := NewInvoiceQueries(repo, newStubViewCache(), discardLogger)

	inv, err := q.GetInvoice(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 49.99, inv.Amount)
	assert.Equal(t, "pending", inv.Status)

	_, err = q.GetInvoice(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}
