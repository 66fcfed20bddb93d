package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/swapdash/dashboard/internal/core/ports"
)

// InvoiceHandler handles HTTP requests for the invoices dashboard.
type InvoiceHandler struct {
	actions ports.InvoiceActions
	queries ports.InvoiceQueries
}

func NewInvoiceHandler(actions ports.InvoiceActions, queries ports.InvoiceQueries) *InvoiceHandler {
	return &InvoiceHandler{actions: actions, queries: queries}
}

// List handles GET /dashboard/invoices.
//
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"  Enums(pending, paid)
// @Success      200     {object}  invoiceListResponse
// @Failure      400     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /dashboard/invoices [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	var q listInvoicesQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	invoices, err := h.queries.ListInvoices(c.Request().Context())
	if err != nil {
		return err
	}

	if q.Status != "" {
		filtered := make([]ports.InvoiceView, 0, len(invoices))
		for _, inv := range invoices {
			if inv.Status == q.Status {
				filtered = append(filtered, inv)
			}
		}
		invoices = filtered
	}

	return c.JSON(http.StatusOK, invoiceListResponse{Invoices: invoices})
}

// Get handles GET /dashboard/invoices/:id.
//
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice id"
// @Success      200  {object}  ports.InvoiceView
// @Failure      404  {object}  errorResponse
// @Router       /dashboard/invoices/{id} [get]
func (h *InvoiceHandler) Get(c echo.Context) error {
	inv, err := h.queries.GetInvoice(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inv)
}

// Create handles POST /dashboard/invoices.
//
// @Summary      Create an invoice
// @Tags         invoices
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        customerId  formData  string  true   "Customer id"
// @Param        amount      formData  number  true   "Amount in dollars"
// @Param        status      formData  string  true   "Status"  Enums(pending, paid)
// @Param        date        formData  string  false  "Invoice date (YYYY-MM-DD), defaults to today"
// @Success      303
// @Failure      422  {object}  stateResponse
// @Failure      500  {object}  stateResponse
// @Router       /dashboard/invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	form, err := readForm(c)
	if err != nil {
		return err
	}
	return writeResult(c, h.actions.CreateInvoice(c.Request().Context(), form))
}

// Update handles POST /dashboard/invoices/:id.
//
// @Summary      Update an invoice
// @Tags         invoices
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        id          path      string  true  "Invoice id"
// @Param        customerId  formData  string  true  "Customer id"
// @Param        amount      formData  number  true  "Amount in dollars"
// @Param        status      formData  string  true  "Status"  Enums(pending, paid)
// @Success      303
// @Failure      422  {object}  stateResponse
// @Failure      500  {object}  stateResponse
// @Router       /dashboard/invoices/{id} [post]
func (h *InvoiceHandler) Update(c echo.Context) error {
	form, err := readForm(c)
	if err != nil {
		return err
	}
	return writeResult(c, h.actions.UpdateInvoice(c.Request().Context(), c.Param("id"), form))
}

// Delete handles POST /dashboard/invoices/:id/delete.
//
// @Summary      Delete an invoice
// @Tags         invoices
// @Security     BearerAuth
// @Param        id   path  string  true  "Invoice id"
// @Success      303
// @Failure      500  {object}  errorResponse
// @Router       /dashboard/invoices/{id}/delete [post]
func (h *InvoiceHandler) Delete(c echo.Context) error {
	return writeResult(c, h.actions.DeleteInvoice(c.Request().Context(), c.Param("id")))
}
