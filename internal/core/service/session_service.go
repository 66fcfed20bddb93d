package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/swapdash/dashboard/internal/core/domain"
	"github.com/swapdash/dashboard/internal/core/ports"
	"github.com/swapdash/dashboard/internal/core/validation"
)

const (
	// StrategyCredentials is the email/password strategy.
	StrategyCredentials = "credentials"

	defaultSessionTTL = 30 * 24 * time.Hour
	defaultSignInPath = "/dashboard"
	defaultSignOutTo  = "/"
)

// Strategy authenticates raw credentials. It returns nil identity and a
// *domain.AuthFailure when the credentials are rejected.
type Strategy interface {
	Authorize(ctx context.Context, credentials map[string]string) (*domain.SessionUser, error)
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(ctx context.Context, credentials map[string]string) (*domain.SessionUser, error)

func (f StrategyFunc) Authorize(ctx context.Context, credentials map[string]string) (*domain.SessionUser, error) {
	return f(ctx, credentials)
}

// CredentialsStrategy reads email and password from the raw credentials and
// delegates to verifier.
func CredentialsStrategy(verifier ports.CredentialVerifier) Strategy {
	return StrategyFunc(func(ctx context.Context, credentials map[string]string) (*domain.SessionUser, error) {
		return verifier.Verify(ctx, credentials[validation.FieldEmail], credentials[validation.FieldPassword])
	})
}

// SessionOptions configures a SessionService.
type SessionOptions struct {
	Secret    string
	TTL       time.Duration
	BaseURL   string
	Callbacks Callbacks
}

// sessionClaims is the signed token payload. Identity fields are limited to
// the SessionUser projection.
type sessionClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionService issues and revokes sessions. Tokens are HS256 JWTs whose
// jti names a record in the session store; a token is only honoured while
// that record exists.
type SessionService struct {
	strategies map[string]Strategy
	store      ports.SessionStore
	secret     []byte
	ttl        time.Duration
	baseURL    string
	callbacks  Callbacks
	log        zerolog.Logger
	now        func() time.Time
}

func NewSessionService(store ports.SessionStore, opts SessionOptions, log zerolog.Logger) *SessionService {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{
		strategies: make(map[string]Strategy),
		store:      store,
		secret:     []byte(opts.Secret),
		ttl:        ttl,
		baseURL:    opts.BaseURL,
		callbacks:  opts.Callbacks.withDefaults(),
		log:        log,
		now:        time.Now,
	}
}

// Register adds or replaces the strategy called name.
func (s *SessionService) Register(name string, strategy Strategy) {
	s.strategies[name] = strategy
}

// SignIn authenticates credentials with the named strategy and issues a
// session. Rejected credentials yield an error matching
// domain.ErrInvalidCredentials.
func (s *SessionService) SignIn(ctx context.Context, strategy string, credentials map[string]string, callbackURL string) (*ports.SignInResult, error) {
	st, ok := s.strategies[strategy]
	if !ok {
		return nil, fmt.Errorf("sign in %q: %w", strategy, domain.ErrUnknownStrategy)
	}

	user, err := st.Authorize(ctx, credentials)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.callbacks.SignIn(ctx, user, strategy) {
		s.log.Info().Str("user_id", user.ID).Str("strategy", strategy).Msg("sign-in denied by policy")
		return nil, domain.ErrSignInDenied
	}

	id := uuid.NewString()
	if err := s.store.Save(ctx, id, user, s.ttl); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to store session")
		return nil, fmt.Errorf("sign in: %w", domain.ErrSessionStore)
	}

	now := s.now()
	expires := now.Add(s.ttl)
	token, err := s.sign(id, user, now, expires)
	if err != nil {
		_ = s.store.Delete(ctx, id)
		return nil, fmt.Errorf("sign in: sign token: %w", err)
	}

	if callbackURL == "" {
		callbackURL = defaultSignInPath
	}

	session := &domain.Session{ID: id, User: user, ExpiresAt: expires}
	s.log.Info().Str("user_id", user.ID).Str("strategy", strategy).Msg("session issued")

	return &ports.SignInResult{
		Token:      token,
		Session:    s.callbacks.Session(ctx, session, user),
		RedirectTo: s.callbacks.Redirect(callbackURL, s.baseURL),
	}, nil
}

// CurrentSession returns the session behind token, or domain.ErrNoSession.
func (s *SessionService) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, domain.ErrNoSession
	}

	user, err := s.store.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return nil, domain.ErrNoSession
		}
		return nil, fmt.Errorf("current session: %w", domain.ErrSessionStore)
	}

	session := &domain.Session{ID: claims.ID, User: user, ExpiresAt: claims.ExpiresAt.Time}
	return s.callbacks.Session(ctx, session, user), nil
}

// SignOut revokes the session behind token and only then returns where the
// client should go. An unparsable or already revoked token still signs out.
func (s *SessionService) SignOut(ctx context.Context, token, redirectTo string) (string, error) {
	if claims, err := s.parse(token); err == nil {
		if err := s.store.Delete(ctx, claims.ID); err != nil {
			s.log.Error().Err(err).Msg("failed to revoke session")
			return "", fmt.Errorf("sign out: %w", domain.ErrSessionStore)
		}
		s.log.Info().Str("user_id", claims.Subject).Msg("session revoked")
	}

	if redirectTo == "" {
		redirectTo = defaultSignOutTo
	}
	return s.callbacks.Redirect(redirectTo, s.baseURL), nil
}

func (s *SessionService) sign(id string, user *domain.SessionUser, issued, expires time.Time) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Name:  user.Name,
		Email: user.Email,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *SessionService) parse(token string) (*sessionClaims, error) {
	if token == "" {
		return nil, domain.ErrNoSession
	}
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tkn.Valid || claims.ID == "" {
		return nil, domain.ErrNoSession
	}
	return claims, nil
}
