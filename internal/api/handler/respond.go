package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/swapdash/dashboard/internal/api/middleware"
	"github.com/swapdash/dashboard/internal/core/domain"
	"github.com/swapdash/dashboard/internal/core/ports"
)

// CookieConfig controls the session cookie written on sign-in.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

// readForm flattens the submitted form (urlencoded or multipart) to the
// first value of every key.
func readForm(c echo.Context) (ports.Form, error) {
	values, err := c.FormParams()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}
	form := make(ports.Form, len(values))
	for k, v := range values {
		if len(v) > 0 {
			form[k] = v[0]
		}
	}
	return form, nil
}

// writeResult renders an ActionResult. Fatal failures are returned as errors
// so the central error handler renders the generic fault response.
func writeResult(c echo.Context, res ports.ActionResult) error {
	switch res.Outcome {
	case ports.Redirected:
		return c.Redirect(http.StatusSeeOther, res.RedirectTo)
	case ports.Invalid:
		return c.JSON(http.StatusUnprocessableEntity, toStateResponse(res.State))
	}
	if res.Fatal {
		return fmt.Errorf("%s: %w", res.State.Message, domain.ErrFatalMutation)
	}
	return c.JSON(http.StatusInternalServerError, toStateResponse(res.State))
}

func toStateResponse(s ports.State) stateResponse {
	return stateResponse{Errors: s.Errors, Message: s.Message}
}

func setSessionCookie(c echo.Context, cfg CookieConfig, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context, cfg CookieConfig) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
