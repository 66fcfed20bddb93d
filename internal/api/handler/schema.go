package handler

import "github.com/swapdash/dashboard/internal/core/ports"

// errorResponse is the standard error envelope returned on 4xx/5xx responses
// that are not form states.
type errorResponse struct {
	Error string `json:"error"`
}

// stateResponse is the re-render payload of a form action that did not
// complete.
type stateResponse struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
}

// --- Request / Response types ---

type listInvoicesQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=pending paid"`
}

type invoiceListResponse struct {
	Invoices []ports.InvoiceView `json:"invoices"`
}

type sessionUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type sessionResponse struct {
	User    sessionUserResponse `json:"user"`
	Expires string              `json:"expires"`
}
