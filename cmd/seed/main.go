// Command seed loads users and invoices from a YAML file into the store
// selected by STORE_DRIVER.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/swapdash/dashboard/internal/core/ports"
	mongostore "github.com/swapdash/dashboard/internal/infrastructure/db/mongo"
	"github.com/swapdash/dashboard/internal/infrastructure/db/postgres"
	"github.com/swapdash/dashboard/internal/pkg/config"
	"github.com/swapdash/dashboard/pkg/logger"
)

func main() {
	path := flag.String("file", "seed.yaml", "path to the seed file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *path); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "dashboard-seed"})

	fh, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer fh.Close()

	data, err := parseSeed(fh)
	if err != nil {
		return err
	}

	var (
		users    userWriter
		invoices ports.InvoiceRepository
	)
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = mongostore.Close(context.Background(), client) }()
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		users, invoices = mongostore.NewUserRepository(db), mongostore.NewInvoiceRepository(db)
	default:
		db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.URL})
		if err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		users, invoices = postgres.NewUserRepository(db), postgres.NewInvoiceRepository(db)
	}

	sum, err := apply(ctx, data, users, invoices)
	if err != nil {
		return err
	}
	log.Info().
		Str("store", cfg.StoreDriver).
		Int("users", sum.Users).
		Int("users_skipped", sum.UsersSkipped).
		Int("invoices", sum.Invoices).
		Bool("invoices_skipped", sum.InvoicesSkipped).
		Msg("seed complete")
	return nil
}
