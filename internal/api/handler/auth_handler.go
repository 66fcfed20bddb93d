package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/swapdash/dashboard/internal/api/middleware"
	"github.com/swapdash/dashboard/internal/core/ports"
)

type AuthHandler struct {
	actions  ports.InvoiceActions
	sessions ports.SessionService
	cookie   CookieConfig
}

func NewAuthHandler(actions ports.InvoiceActions, sessions ports.SessionService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{actions: actions, sessions: sessions, cookie: cookie}
}

// Login authenticates with email and password and starts a session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        email        formData  string  true   "Account email"
// @Param        password     formData  string  true   "Account password"
// @Param        callbackUrl  formData  string  false  "Where to go after sign-in (same origin only)"
// @Success      303
// @Failure      401  {object}  stateResponse
// @Failure      500  {object}  stateResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	form, err := readForm(c)
	if err != nil {
		return err
	}

	res := h.actions.Authenticate(c.Request().Context(), form)
	switch res.Outcome {
	case ports.Redirected:
		setSessionCookie(c, h.cookie, res.Token)
		return c.Redirect(http.StatusSeeOther, res.RedirectTo)
	case ports.Invalid:
		return c.JSON(http.StatusUnauthorized, stateResponse{Message: res.State.Message})
	default:
		return c.JSON(http.StatusInternalServerError, stateResponse{Message: res.State.Message})
	}
}

// Logout revokes the current session and redirects.
//
// @Summary      Sign out
// @Tags         auth
// @Param        redirectTo  formData  string  false  "Where to go after sign-out (same origin only)"
// @Success      303
// @Failure      503  {object}  errorResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	target, err := h.sessions.SignOut(c.Request().Context(), middleware.TokenFromRequest(c), c.FormValue("redirectTo"))
	if err != nil {
		return err
	}

	clearSessionCookie(c, h.cookie)
	return c.Redirect(http.StatusSeeOther, target)
}

// Session returns the caller's current session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess, err := h.sessions.CurrentSession(c.Request().Context(), middleware.TokenFromRequest(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{
		User: sessionUserResponse{
			ID:    sess.User.ID,
			Name:  sess.User.Name,
			Email: sess.User.Email,
		},
		Expires: sess.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
