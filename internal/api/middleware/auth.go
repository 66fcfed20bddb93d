package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/swapdash/dashboard/internal/core/domain"
	"github.com/swapdash/dashboard/internal/core/ports"
)

const (
	// SessionCookie carries the session token for browser clients.
	SessionCookie = "session_token"

	sessionKey = "session"
)

// TokenFromRequest returns the session token from the session cookie, or
// from an "Authorization: Bearer" header when no cookie is present.
func TokenFromRequest(c echo.Context) string {
	if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RequireSession resolves the caller's session and stores it in the context.
// Callers without a live session are sent to loginPath with a callbackUrl
// pointing back at the requested URI.
func RequireSession(sessions ports.SessionService, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sessions.CurrentSession(c.Request().Context(), TokenFromRequest(c))
			if err != nil {
				if errors.Is(err, domain.ErrNoSession) {
					target := loginPath + "?callbackUrl=" + url.QueryEscape(c.Request().RequestURI)
					return c.Redirect(http.StatusSeeOther, target)
				}
				return err
			}

			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session stored by RequireSession, or nil.
func SessionFrom(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionKey).(*domain.Session)
	return sess
}
