package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/swapdash/dashboard/internal/core/domain"
	"github.com/swapdash/dashboard/internal/core/ports"
)

// seedFile is the YAML layout read by the seed tool.
type seedFile struct {
	Users []struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"users"`
	Invoices []struct {
		ID         string  `yaml:"id"`
		CustomerID string  `yaml:"customer_id"`
		Amount     float64 `yaml:"amount"`
		Status     string  `yaml:"status"`
		Date       string  `yaml:"date"`
	} `yaml:"invoices"`
}

// userWriter creates users. An existing email is left untouched and reported
// as domain.ErrUserExists.
type userWriter interface {
	Create(ctx context.Context, user *domain.User) error
}

type seedSummary struct {
	Users           int
	UsersSkipped    int
	Invoices        int
	InvoicesSkipped bool
}

// hashCost is replaced in tests.
var hashCost = bcrypt.DefaultCost

func parseSeed(r io.Reader) (*seedFile, error) {
	var f seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &f, nil
}

// apply writes users and, when the store holds no invoices yet, invoices.
func apply(ctx context.Context, f *seedFile, users userWriter, invoices ports.InvoiceRepository) (seedSummary, error) {
	var sum seedSummary

	for _, u := range f.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), hashCost)
		if err != nil {
			return sum, fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		err = users.Create(ctx, &domain.User{Name: u.Name, Email: u.Email, PasswordHash: string(hash)})
		if errors.Is(err, domain.ErrUserExists) {
			sum.UsersSkipped++
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("create user %s: %w", u.Email, err)
		}
		sum.Users++
	}

	existing, err := invoices.List(ctx)
	if err != nil {
		return sum, fmt.Errorf("list invoices: %w", err)
	}
	if len(existing) > 0 {
		sum.InvoicesSkipped = true
		return sum, nil
	}

	for i, in := range f.Invoices {
		status, err := domain.ParseInvoiceStatus(in.Status)
		if err != nil {
			return sum, fmt.Errorf("invoice %d: %w", i, err)
		}
		cents, err := domain.ToCents(in.Amount)
		if err != nil {
			return sum, fmt.Errorf("invoice %d: amount %v: %w", i, in.Amount, err)
		}
		id := in.ID
		if id == "" {
			id = uuid.NewString()
		}
		inv := &domain.Invoice{
			ID:         id,
			CustomerID: in.CustomerID,
			Amount:     cents,
			Status:     status,
			Date:       in.Date,
		}
		if err := invoices.Create(ctx, inv); err != nil {
			return sum, fmt.Errorf("create invoice %d: %w", i, err)
		}
		sum.Invoices++
	}
	return sum, nil
}
