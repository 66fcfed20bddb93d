package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/swapdash/dashboard/internal/core/domain"
)

// RedirectFunc decides where a client may be sent after a session change.
type RedirectFunc func(requested, baseURL string) string

// SessionFunc shapes the session object exposed to callers.
type SessionFunc func(ctx context.Context, session *domain.Session, user *domain.SessionUser) *domain.Session

// SignInFunc admits or denies a verified identity. strategy names the
// authentication strategy that produced it.
type SignInFunc func(ctx context.Context, user *domain.SessionUser, strategy string) bool

// Callbacks are the policy hooks consulted during the session lifecycle.
// Nil members use the defaults.
type Callbacks struct {
	Redirect RedirectFunc
	Session  SessionFunc
	SignIn   SignInFunc
}

// DefaultCallbacks returns the pass-through policy set.
func DefaultCallbacks() Callbacks {
	return Callbacks{
		Redirect: SameOriginRedirect,
		Session:  PassthroughSession,
		SignIn:   AdmitAll,
	}
}

func (c Callbacks) withDefaults() Callbacks {
	d := DefaultCallbacks()
	if c.Redirect == nil {
		c.Redirect = d.Redirect
	}
	if c.Session == nil {
		c.Session = d.Session
	}
	if c.SignIn == nil {
		c.SignIn = d.SignIn
	}
	return c
}

// SameOriginRedirect returns requested when it points at the same origin as
// baseURL and baseURL otherwise. Relative paths resolve against baseURL.
func SameOriginRedirect(requested, baseURL string) string {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return baseURL
	}
	if requested == "" {
		return baseURL
	}
	// "//host" and "/\host" are read by browsers as another origin.
	if strings.HasPrefix(requested, "/") && !strings.HasPrefix(requested, "//") && !strings.HasPrefix(requested, "/\\") {
		ref, err := url.Parse(requested)
		if err != nil {
			return baseURL
		}
		return base.ResolveReference(ref).String()
	}

	target, err := url.Parse(requested)
	if err != nil {
		return baseURL
	}
	if !strings.EqualFold(target.Scheme, base.Scheme) || !strings.EqualFold(target.Host, base.Host) {
		return baseURL
	}
	return target.String()
}

// PassthroughSession returns session unchanged.
func PassthroughSession(_ context.Context, session *domain.Session, _ *domain.SessionUser) *domain.Session {
	return session
}

// AdmitAll admits every identity the strategy has already verified.
func AdmitAll(context.Context, *domain.SessionUser, string) bool {
	return true
}

// EmailDomainGate admits only users whose email belongs to one of domains.
// With no domains it admits everyone.
func EmailDomainGate(domains ...string) SignInFunc {
	allowed := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			allowed[d] = struct{}{}
		}
	}
	return func(_ context.Context, user *domain.SessionUser, _ string) bool {
		if len(allowed) == 0 {
			return true
		}
		at := strings.LastIndexByte(user.Email, '@')
		if at < 0 {
			return false
		}
		_, ok := allowed[strings.ToLower(user.Email[at+1:])]
		return ok
	}
}
