package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/swapdash/dashboard/internal/core/domain"
	"github.com/swapdash/dashboard/internal/core/ports"
)

const dateLayout = "2006-01-02"

type InvoiceRepository struct {
	db DBTX
}

func NewInvoiceRepository(db DBTX) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	date, err := time.Parse(dateLayout, inv.Date)
	if err != nil {
		return fmt.Errorf("insert invoice: parse date: %w", err)
	}

	query :=
		`INSERT INTO invoices (id, customer_id, amount, status, date)
		 VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, query, inv.ID, inv.CustomerID, inv.Amount, string(inv.Status), date); err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update returns domain.ErrInvoiceNotFound when no row has id.
func (r *InvoiceRepository) Update(ctx context.Context, id string, changes ports.InvoiceChanges) error {
	if !validID(id) {
		return domain.ErrInvoiceNotFound
	}
	query :=
		`UPDATE invoices
		 SET customer_id = $1, amount = $2, status = $3
		 WHERE id = $4`

	res, err := r.db.ExecContext(ctx, query, changes.CustomerID, changes.Amount, string(changes.Status), id)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update invoice: rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// Delete removes the invoice with id. No matching row is not an error.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	if !validID(id) {
		return nil, domain.ErrInvoiceNotFound
	}
	query :=
		`SELECT id, customer_id, amount, status, date FROM invoices
		 WHERE id = $1`

	inv, err := scanInvoice(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return inv, nil
}

// List returns every invoice, newest date first.
func (r *InvoiceRepository) List(ctx context.Context) ([]*domain.Invoice, error) {
	query :=
		`SELECT id, customer_id, amount, status, date FROM invoices
		 ORDER BY date DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInvoice(s scanner) (*domain.Invoice, error) {
	var (
		inv    domain.Invoice
		status string
		date   time.Time
	)
	if err := s.Scan(&inv.ID, &inv.CustomerID, &inv.Amount, &status, &date); err != nil {
		return nil, err
	}
	inv.Status = domain.InvoiceStatus(status)
	inv.Date = date.Format(dateLayout)
	return &inv, nil
}

// validID reports whether id can match the UUID primary key. Anything else
// names no row, and binding it would fail the whole statement.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
