package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/swapdash/dashboard/internal/core/domain"
	"github.com/swapdash/dashboard/internal/core/ports"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

var listFixture = []ports.InvoiceView{
	{ID: "inv-1", CustomerID: "c-1", Amount: 157.95, Status: "pending", Date: "2024-03-02"},
	{ID: "inv-2", CustomerID: "c-2", Amount: 20.00, Status: "paid", Date: "2024-03-01"},
}

func TestInvoiceHandler_Create_Redirects(t *testing.T) {
	e := newTestEcho()
	var got ports.Form
	actions := &stubActions{
		createFn: func(_ context.Context, form ports.Form) ports.ActionResult {
			got = form
			return ports.ActionResult{Outcome: ports.Redirected, RedirectTo: "/dashboard/invoices"}
		},
	}
	handler := NewInvoiceHandler(actions, &stubQueries{})

	req := formRequest(http.MethodPost, "/dashboard/invoices", url.Values{
		"customerId": {"c-1"},
		"amount":     {"157.95"},
		"status":     {"pending"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard/invoices" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if got["customerId"] != "c-1" || got["amount"] != "157.95" || got["status"] != "pending" {
		t.Fatalf("form not forwarded: %v", got)
	}
}

func TestInvoiceHandler_Create_Invalid(t *testing.T) {
	e := newTestEcho()
	actions := &stubActions{
		createFn: func(context.Context, ports.Form) ports.ActionResult {
			return ports.ActionResult{Outcome: ports.Invalid, State: ports.State{
				Errors:  map[string][]string{"amount": {"Please enter an amount greater than $0."}},
				Message: "Missing Fields. Failed to Create Invoice.",
			}}
		},
	}
	handler := NewInvoiceHandler(actions, &stubQueries{})

	req := formRequest(http.MethodPost, "/dashboard/invoices", url.Values{"customerId": {"c-1"}, "amount": {"0"}})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var resp stateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Missing Fields. Failed to Create Invoice." || len(resp.Errors["amount"]) != 1 {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestInvoiceHandler_Update_Failed(t *testing.T) {
	e := newTestEcho()
	var gotID string
	actions := &stubActions{
		updateFn: func(_ context.Context, id string, _ ports.Form) ports.ActionResult {
			gotID = id
			return ports.ActionResult{Outcome: ports.Failed, State: ports.State{Message: "Database Error: Failed to Update Invoice."}}
		},
	}
	handler := NewInvoiceHandler(actions, &stubQueries{})

	req := formRequest(http.MethodPost, "/dashboard/invoices/inv-1", url.Values{"customerId": {"c-1"}, "amount": {"5"}, "status": {"paid"}})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("inv-1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotID != "inv-1" {
		t.Fatalf("expected id inv-1, got %q", gotID)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestInvoiceHandler_Delete_FatalIsEscalated(t *testing.T) {
	e := newTestEcho()
	actions := &stubActions{
		deleteFn: func(context.Context, string) ports.ActionResult {
			return ports.ActionResult{Outcome: ports.Failed, Fatal: true, State: ports.State{Message: "Database Error: Failed to Delete Invoice."}}
		},
	}
	handler := NewInvoiceHandler(actions, &stubQueries{})

	req := httptest.NewRequest(http.MethodPost, "/dashboard/invoices/inv-1/delete", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("inv-1")

	err := handler.Delete(c)
	if !errors.Is(err, domain.ErrFatalMutation) {
		t.Fatalf("expected ErrFatalMutation, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("nothing may be written before the error handler runs, got %q", rec.Body.String())
	}
}

func TestInvoiceHandler_Delete_Redirects(t *testing.T) {
	e := newTestEcho()
	actions := &stubActions{
		deleteFn: func(context.Context, string) ports.ActionResult {
			return ports.ActionResult{Outcome: ports.Redirected, RedirectTo: "/dashboard/invoices"}
		},
	}
	handler := NewInvoiceHandler(actions, &stubQueries{})

	req := httptest.NewRequest(http.MethodPost, "/dashboard/invoices/inv-1/delete", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
}

func TestInvoiceHandler_List(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantIDs   []string
		wantError int
	}{
		{name: "all", query: "", wantIDs: []string{"inv-1", "inv-2"}},
		{name: "paid only", query: "?status=paid", wantIDs: []string{"inv-2"}},
		{name: "unknown status", query: "?status=void", wantError: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			queries := &stubQueries{
				listFn: func(context.Context) ([]ports.InvoiceView, error) {
					return listFixture, nil
				},
			}
			handler := NewInvoiceHandler(&stubActions{}, queries)

			req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices"+tc.query, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := handler.List(c)
			if tc.wantError != 0 {
				var he *echo.HTTPError
				if !errors.As(err, &he) || he.Code != tc.wantError {
					t.Fatalf("expected HTTP %d error, got %v", tc.wantError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("handler error: %v", err)
			}

			var resp invoiceListResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if len(resp.Invoices) != len(tc.wantIDs) {
				t.Fatalf("expected %d invoices, got %d", len(tc.wantIDs), len(resp.Invoices))
			}
			for i, id := range tc.wantIDs {
				if resp.Invoices[i].ID != id {
					t.Fatalf("position %d: expected %s, got %s", i, id, resp.Invoices[i].ID)
				}
			}
		})
	}
}

func TestInvoiceHandler_Get(t *testing.T) {
	e := newTestEcho()
	queries := &stubQueries{
		getFn: func(_ context.Context, id string) (*ports.InvoiceView, error) {
			if id != "inv-1" {
				return nil, domain.ErrInvoiceNotFound
			}
			inv := listFixture[0]
			return &inv, nil
		},
	}
	handler := NewInvoiceHandler(&stubActions{}, queries)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices/inv-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("inv-1")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp ports.InvoiceView
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Amount != 157.95 {
		t.Fatalf("expected amount in dollars, got %v", resp.Amount)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard/invoices/missing", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := handler.Get(c); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}
