package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/swapdash/dashboard/internal/core/domain"
	"github.com/swapdash/dashboard/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User
	findErr error
	calls   int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.calls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

// mustHash hashes with the minimum cost to keep tests fast.
func mustHash(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}

func seededUser() *domain.User {
	return &domain.User{
		ID:           "410544b2-4001-4271-9855-fec4b6a6442a",
		Name:         "User",
		Email:        "user@nextmail.com",
		PasswordHash: mustHash("123456"),
	}
}

// ---------------------------------------------------------------------------
// Invoices
// ---------------------------------------------------------------------------

type stubInvoiceRepo struct {
	byID      map[string]*domain.Invoice
	createErr error
	updateErr error
	deleteErr error
	listErr   error
	creates   int
	updates   int
	deletes   int
	lists     int
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{byID: make(map[string]*domain.Invoice)}
}

func (r *stubInvoiceRepo) Create(_ context.Context, inv *domain.Invoice) error {
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	clone := *inv
	r.byID[inv.ID] = &clone
	return nil
}

func (r *stubInvoiceRepo) Update(_ context.Context, id string, c ports.InvoiceChanges) error {
	r.updates++
	if r.updateErr != nil {
		return r.updateErr
	}
	inv, ok := r.byID[id]
	if !ok {
		return domain.ErrInvoiceNotFound
	}
	inv.CustomerID, inv.Amount, inv.Status = c.CustomerID, c.Amount, c.Status
	return nil
}

func (r *stubInvoiceRepo) Delete(_ context.Context, id string) error {
	r.deletes++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.byID, id)
	return nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id string) (*domain.Invoice, error) {
	inv, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	clone := *inv
	return &clone, nil
}

func (r *stubInvoiceRepo) List(_ context.Context) ([]*domain.Invoice, error) {
	r.lists++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Invoice, 0, len(r.byID))
	for _, inv := range r.byID {
		clone := *inv
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// ---------------------------------------------------------------------------
// Cache
// ---------------------------------------------------------------------------

type stubViewCache struct {
	views         map[string][]byte
	invalidated   []string
	invalidateErr error
	getErr        error
}

func newStubViewCache() *stubViewCache {
	return &stubViewCache{views: make(map[string][]byte)}
}

func (c *stubViewCache) Invalidate(_ context.Context, path string) error {
	c.invalidated = append(c.invalidated, path)
	if c.invalidateErr != nil {
		return c.invalidateErr
	}
	delete(c.views, path)
	return nil
}

func (c *stubViewCache) Get(_ context.Context, path string, dst any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	b, ok := c.views[path]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *stubViewCache) Set(_ context.Context, path string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.views[path] = b
	return nil
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

type stubSessionStore struct {
	mu        sync.Mutex
	sessions  map[string]*domain.SessionUser
	deleteErr error
	saveErr   error
	order     []string // "save:<id>" / "delete:<id>"
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.SessionUser)}
}

func (s *stubSessionStore) Save(_ context.Context, id string, user *domain.SessionUser, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	clone := *user
	s.sessions[id] = &clone
	s.order = append(s.order, "save:"+id)
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.SessionUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNoSession
	}
	clone := *u
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.sessions, id)
	s.order = append(s.order, "delete:"+id)
	return nil
}

type stubSessionService struct {
	signInFn func(ctx context.Context, strategy string, creds map[string]string, callbackURL string) (*ports.SignInResult, error)
}

func (s *stubSessionService) SignIn(ctx context.Context, strategy string, creds map[string]string, callbackURL string) (*ports.SignInResult, error) {
	return s.signInFn(ctx, strategy, creds, callbackURL)
}

func (s *stubSessionService) SignOut(context.Context, string, string) (string, error) {
	return "/", nil
}

func (s *stubSessionService) CurrentSession(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrNoSession
}
