package ports

import (
	"context"

	"github.com/swapdash/dashboard/internal/core/domain"
)

// Form is a flat submission of field name to raw string value.
type Form map[string]string

// State is the re-render payload for a form whose action did not complete.
type State struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
}

// Outcome classifies an ActionResult.
type Outcome int

const (
	// Redirected means the action completed and the client should navigate.
	Redirected Outcome = iota
	// Invalid means the input was rejected (field validation or credentials)
	// and nothing was persisted.
	Invalid
	// Failed means the backing store (or session layer) failed.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Redirected:
		return "redirected"
	case Invalid:
		return "invalid"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// ActionResult is the uniform result of every mutation action.
type ActionResult struct {
	Outcome    Outcome
	RedirectTo string
	State      State
	// Fatal marks failures the boundary should escalate to an error page
	// rather than re-render inline.
	Fatal bool
	// Token is set by Authenticate on success.
	Token string
}

// InvoiceActions are the invoice mutations exposed to the transport layer.
type InvoiceActions interface {
	CreateInvoice(ctx context.Context, form Form) ActionResult
	UpdateInvoice(ctx context.Context, id string, form Form) ActionResult
	DeleteInvoice(ctx context.Context, id string) ActionResult
	Authenticate(ctx context.Context, form Form) ActionResult
}

// InvoiceView is an invoice as shown on the dashboard, amount in major units.
type InvoiceView struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
	Date       string  `json:"date"`
}

// InvoiceQueries serves the read side that mutations invalidate.
type InvoiceQueries interface {
	ListInvoices(ctx context.Context) ([]InvoiceView, error)
	GetInvoice(ctx context.Context, id string) (*InvoiceView, error)
}

// NewInvoiceView projects a stored invoice for display.
func NewInvoiceView(inv *domain.Invoice) InvoiceView {
	return InvoiceView{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     inv.AmountMajor(),
		Status:     string(inv.Status),
		Date:       inv.Date,
	}
}
