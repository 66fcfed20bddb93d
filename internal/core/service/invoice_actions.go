package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/swapdash/dashboard/internal/core/domain"
	"github.com/swapdash/dashboard/internal/core/ports"
	"github.com/swapdash/dashboard/internal/core/validation"
	"github.com/swapdash/dashboard/internal/pkg/metrics"
)

// Paths the actions navigate to and invalidate.
const (
	InvoicesPath  = "/dashboard/invoices"
	DashboardPath = "/dashboard"
)

// User-facing messages.
const (
	msgCreateInvalid = "Missing fields. Failed to create invoice."
	msgUpdateInvalid = "Missing fields. Failed to update invoice."
	msgCreateFailed  = "Database Error: Failed to create invoice."
	msgUpdateFailed  = "Database Error: Failed to update invoice."
	msgDeleteFailed  = "Database Error: Failed to Delete Invoice."
	msgMissingID     = "Missing invoice id."
	msgAmountRange   = "Please enter an amount no greater than $" + validation.MaxAmount + "."
	msgInvalidLogin  = "Invalid credentials."
	msgLoginFailed   = "Something went wrong."
)

// InvoiceActions runs the validate → persist → invalidate → redirect
// pipeline for invoices, plus the form sign-in action.
type InvoiceActions struct {
	invoices ports.InvoiceRepository
	cache    ports.ViewCache
	sessions ports.SessionService
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

func NewInvoiceActions(
	invoices ports.InvoiceRepository,
	cache ports.ViewCache,
	sessions ports.SessionService,
	log zerolog.Logger,
) *InvoiceActions {
	return &InvoiceActions{
		invoices: invoices,
		cache:    cache,
		sessions: sessions,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// CreateInvoice validates form against the full schema and inserts the
// invoice. The amount is stored in cents.
func (a *InvoiceActions) CreateInvoice(ctx context.Context, form ports.Form) (res ports.ActionResult) {
	defer func() { record("create_invoice", res) }()

	parsed := validation.CreateInvoice.Parse(form)
	if !parsed.Valid() {
		return invalid(parsed.Errors(), msgCreateInvalid)
	}

	cents, err := domain.ToCents(parsed.Float(validation.FieldAmount))
	if err != nil {
		return amountOutOfRange(msgCreateInvalid)
	}

	date := parsed.String(validation.FieldDate)
	if date == "" {
		date = a.now().UTC().Format(validation.DateLayout)
	}

	inv := &domain.Invoice{
		ID:         a.newID(),
		CustomerID: parsed.String(validation.FieldCustomerID),
		Amount:     cents,
		Status:     domain.InvoiceStatus(parsed.String(validation.FieldStatus)),
		Date:       date,
	}

	if err := a.invoices.Create(ctx, inv); err != nil {
		a.log.Error().Err(err).Str("op", "create_invoice").Msg("failed to create invoice")
		return failed(msgCreateFailed, false)
	}

	a.log.Info().Str("invoice_id", inv.ID).Int64("amount", inv.Amount).Msg("invoice created")
	return a.invalidateAndRedirect(ctx, InvoicesPath)
}

// UpdateInvoice validates form against the reduced schema and updates the
// invoice keyed by id.
func (a *InvoiceActions) UpdateInvoice(ctx context.Context, id string, form ports.Form) (res ports.ActionResult) {
	defer func() { record("update_invoice", res) }()

	parsed := validation.UpdateInvoice.Parse(form)
	if !parsed.Valid() {
		return invalid(parsed.Errors(), msgUpdateInvalid)
	}
	if id == "" {
		return failed(msgMissingID, false)
	}
	cents, err := domain.ToCents(parsed.Float(validation.FieldAmount))
	if err != nil {
		return amountOutOfRange(msgUpdateInvalid)
	}

	changes := ports.InvoiceChanges{
		CustomerID: parsed.String(validation.FieldCustomerID),
		Amount:     cents,
		Status:     domain.InvoiceStatus(parsed.String(validation.FieldStatus)),
	}

	if err := a.invoices.Update(ctx, id, changes); err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			a.log.Warn().Str("op", "update_invoice").Str("invoice_id", id).Msg("invoice not found")
		} else {
			a.log.Error().Err(err).Str("op", "update_invoice").Str("invoice_id", id).Msg("failed to update invoice")
		}
		return failed(msgUpdateFailed, false)
	}

	a.log.Info().Str("invoice_id", id).Msg("invoice updated")
	return a.invalidateAndRedirect(ctx, InvoicesPath)
}

// DeleteInvoice removes the invoice keyed by id. Deleting an id that no
// longer exists succeeds. A store failure is marked Fatal so the boundary
// escalates it.
func (a *InvoiceActions) DeleteInvoice(ctx context.Context, id string) (res ports.ActionResult) {
	defer func() { record("delete_invoice", res) }()

	if id == "" {
		return failed(msgMissingID, false)
	}

	if err := a.invoices.Delete(ctx, id); err != nil {
		a.log.Error().Err(err).Str("op", "delete_invoice").Str("invoice_id", id).Msg("failed to delete invoice")
		return failed(msgDeleteFailed, true)
	}

	a.log.Info().Str("invoice_id", id).Msg("invoice deleted")
	return a.invalidateAndRedirect(ctx, InvoicesPath)
}

// Authenticate signs in with the credentials strategy. Every credential
// rejection is Invalid with the same message; any other failure is Failed.
func (a *InvoiceActions) Authenticate(ctx context.Context, form ports.Form) (res ports.ActionResult) {
	defer func() { record("authenticate", res) }()

	creds := map[string]string{
		validation.FieldEmail:    form[validation.FieldEmail],
		validation.FieldPassword: form[validation.FieldPassword],
	}

	signed, err := a.sessions.SignIn(ctx, StrategyCredentials, creds, form["callbackUrl"])
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrSignInDenied) {
			return invalid(nil, msgInvalidLogin)
		}
		a.log.Error().Err(err).Str("op", "authenticate").Msg("sign-in failed")
		return failed(msgLoginFailed, false)
	}

	target := signed.RedirectTo
	if target == "" {
		target = DashboardPath
	}
	return ports.ActionResult{Outcome: ports.Redirected, RedirectTo: target, Token: signed.Token}
}

// invalidateAndRedirect runs after a durable write. A cache failure is logged
// and does not change the outcome.
func (a *InvoiceActions) invalidateAndRedirect(ctx context.Context, path string) ports.ActionResult {
	if err := a.cache.Invalidate(ctx, path); err != nil {
		a.log.Warn().Err(err).Str("path", path).Msg("failed to invalidate view")
		metrics.CacheInvalidationsTotal.WithLabelValues("error").Inc()
	} else {
		metrics.CacheInvalidationsTotal.WithLabelValues("ok").Inc()
	}
	return ports.ActionResult{Outcome: ports.Redirected, RedirectTo: path}
}

func record(action string, res ports.ActionResult) {
	metrics.ActionsTotal.WithLabelValues(action, res.Outcome.String()).Inc()
}

func invalid(errs validation.FieldErrors, msg string) ports.ActionResult {
	return ports.ActionResult{
		Outcome: ports.Invalid,
		State:   ports.State{Errors: errs, Message: msg},
	}
}

// amountOutOfRange covers amounts the schema accepted but that do not convert
// to storable cents.
func amountOutOfRange(msg string) ports.ActionResult {
	errs := validation.FieldErrors{}
	errs.Add(validation.FieldAmount, msgAmountRange)
	return invalid(errs, msg)
}

func failed(msg string, fatal bool) ports.ActionResult {
	return ports.ActionResult{
		Outcome: ports.Failed,
		State:   ports.State{Message: msg},
		Fatal:   fatal,
	}
}
