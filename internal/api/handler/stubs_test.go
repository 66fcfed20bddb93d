package handler

import (
	"context"
	"errors"

	"github.com/swapdash/dashboard/internal/core/domain"
	"github.com/swapdash/dashboard/internal/core/ports"
)

type stubActions struct {
	createFn       func(ctx context.Context, form ports.Form) ports.ActionResult
	updateFn       func(ctx context.Context, id string, form ports.Form) ports.ActionResult
	deleteFn       func(ctx context.Context, id string) ports.ActionResult
	authenticateFn func(ctx context.Context, form ports.Form) ports.ActionResult
}

func (s *stubActions) CreateInvoice(ctx context.Context, form ports.Form) ports.ActionResult {
	return s.createFn(ctx, form)
}

func (s *stubActions) UpdateInvoice(ctx context.Context, id string, form ports.Form) ports.ActionResult {
	return s.updateFn(ctx, id, form)
}

func (s *stubActions) DeleteInvoice(ctx context.Context, id string) ports.ActionResult {
	return s.deleteFn(ctx, id)
}

func (s *stubActions) Authenticate(ctx context.Context, form ports.Form) ports.ActionResult {
	return s.authenticateFn(ctx, form)
}

type stubQueries struct {
	listFn func(ctx context.Context) ([]ports.InvoiceView, error)
	getFn  func(ctx context.Context, id string) (*ports.InvoiceView, error)
}

func (s *stubQueries) ListInvoices(ctx context.Context) ([]ports.InvoiceView, error) {
	return s.listFn(ctx)
}

func (s *stubQueries) GetInvoice(ctx context.Context, id string) (*ports.InvoiceView, error) {
	return s.getFn(ctx, id)
}

type stubSessions struct {
	signOutFn func(ctx context.Context, token, redirectTo string) (string, error)
	currentFn func(ctx context.Context, token string) (*domain.Session, error)
}

func (s *stubSessions) SignIn(context.Context, string, map[string]string, string) (*ports.SignInResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSessions) SignOut(ctx context.Context, token, redirectTo string) (string, error) {
	return s.signOutFn(ctx, token, redirectTo)
}

func (s *stubSessions) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	return s.currentFn(ctx, token)
}
