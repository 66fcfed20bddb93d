package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/swapdash/dashboard/internal/api"
	"github.com/swapdash/dashboard/internal/api/handler"
	"github.com/swapdash/dashboard/internal/core/ports"
	"github.com/swapdash/dashboard/internal/core/service"
	mongostore "github.com/swapdash/dashboard/internal/infrastructure/db/mongo"
	"github.com/swapdash/dashboard/internal/infrastructure/db/postgres"
	redisstore "github.com/swapdash/dashboard/internal/infrastructure/db/redis"
	"github.com/swapdash/dashboard/internal/pkg/config"
	"github.com/swapdash/dashboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dashboard: %v\n", err)
		os.Exit(1)
	}
}

// stores is the primary store selected by STORE_DRIVER.
type stores struct {
	users    ports.UserRepository
	invoices ports.InvoiceRepository
	health   handler.Dependency
	close    func(context.Context) error
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "dashboard",
	})

	primary, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := primary.close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("closing primary store")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	verifier := service.NewCredentialVerifier(primary.users, logger.Component("credentials"))
	sessions := service.NewSessionService(redisstore.NewSessionStore(rdb), service.SessionOptions{
		Secret:  cfg.Auth.JWTSecret,
		TTL:     cfg.Auth.SessionTTL,
		BaseURL: cfg.BaseURL,
		Callbacks: service.Callbacks{
			SignIn: service.EmailDomainGate(cfg.Auth.AllowedDomains...),
		},
	}, logger.Component("sessions"))
	sessions.Register(service.StrategyCredentials, service.CredentialsStrategy(verifier))

	cache := redisstore.NewViewCache(rdb, cfg.Redis.ViewTTL)
	actions := service.NewInvoiceActions(primary.invoices, cache, sessions, logger.Component("actions"))
	queries := service.NewInvoiceQueries(primary.invoices, cache, logger.Component("queries"))

	e := api.NewRouter(api.Dependencies{
		Actions:  actions,
		Queries:  queries,
		Sessions: sessions,
		Health: []handler.Dependency{
			primary.health,
			{Name: "redis", Ping: redisstore.Pinger(rdb)},
		},
		Cookie: handler.CookieConfig{Secure: !cfg.IsDevelopment(), TTL: cfg.Auth.SessionTTL},
		Log:    logger.Component("http"),
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("dashboard listening")
		serveErr <- e.Start(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = mongostore.Close(context.Background(), client)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo ready")
		return &stores{
			users:    mongostore.NewUserRepository(db),
			invoices: mongostore.NewInvoiceRepository(db),
			health:   handler.Dependency{Name: "mongo", Ping: mongostore.Pinger(client)},
			close:    func(ctx context.Context) error { return mongostore.Close(ctx, client) },
		}, nil
	default:
		db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.URL})
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info().Msg("postgres ready")
		return &stores{
			users:    postgres.NewUserRepository(db),
			invoices: postgres.NewInvoiceRepository(db),
			health:   handler.Dependency{Name: "postgres", Ping: db.PingContext},
			close:    func(context.Context) error { return db.Close() },
		}, nil
	}
}
