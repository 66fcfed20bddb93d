package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/swapdash/dashboard/docs"
	"github.com/swapdash/dashboard/internal/api/handler"
	"github.com/swapdash/dashboard/internal/api/middleware"
	"github.com/swapdash/dashboard/internal/core/ports"
)

const loginPath = "/login"

// Dependencies is everything the router needs to serve the dashboard.
type Dependencies struct {
	Actions  ports.InvoiceActions
	Queries  ports.InvoiceQueries
	Sessions ports.SessionService
	Health   []handler.Dependency
	Cookie   handler.CookieConfig
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddleware("dashboard"))

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Health...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Actions, deps.Sessions, deps.Cookie)
	e.POST(loginPath, authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.GET("/session", authHandler.Session)

	// --- Dashboard (session required) ---
	invoiceHandler := handler.NewInvoiceHandler(deps.Actions, deps.Queries)
	dashboard := e.Group("/dashboard", middleware.RequireSession(deps.Sessions, loginPath))
	dashboard.GET("/invoices", invoiceHandler.List)
	dashboard.POST("/invoices", invoiceHandler.Create)
	dashboard.GET("/invoices/:id", invoiceHandler.Get)
	dashboard.POST("/invoices/:id", invoiceHandler.Update)
	dashboard.POST("/invoices/:id/delete", invoiceHandler.Delete)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			if sess := middleware.SessionFrom(c); sess != nil && sess.User != nil {
				evt = evt.Str("user_id", sess.User.ID)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
