package domain

import (
	"errors"
	"math"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrInvalidStatus   = errors.New("invalid invoice status")
	ErrFatalMutation   = errors.New("mutation failed")
	ErrAmountRange     = errors.New("invoice amount out of range")
)

// MaxAmountCents is the largest amount an invoice may carry. It matches the
// INTEGER amount column.
const MaxAmountCents = math.MaxInt32

// ParseInvoiceStatus returns the status named by s, or ErrInvalidStatus.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch InvoiceStatus(s) {
	case InvoicePending, InvoicePaid:
		return InvoiceStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// Valid reports whether s is one of the defined statuses.
func (s InvoiceStatus) Valid() bool {
	_, err := ParseInvoiceStatus(string(s))
	return err == nil
}

// Invoice is a billing record. Amount is held in minor currency units (cents).
type Invoice struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
	Date       string        `json:"date"`
}

// ToCents converts a major-unit amount to minor units. Inputs are expected to
// have at most two fractional digits; rounding absorbs float representation
// error (49.99 * 100 is not exactly 4999 in binary). Amounts that do not land
// in 1..MaxAmountCents return ErrAmountRange.
func ToCents(amount float64) (int64, error) {
	scaled := math.Round(amount * 100)
	if math.IsNaN(scaled) || scaled < 1 || scaled > MaxAmountCents {
		return 0, ErrAmountRange
	}
	return int64(scaled), nil
}

// ValidAmount reports whether cents is a storable invoice amount.
func ValidAmount(cents int64) bool {
	return cents >= 1 && cents <= MaxAmountCents
}

// FromCents converts minor units back to a major-unit amount.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// AmountMajor returns the invoice amount in major currency units.
func (i *Invoice) AmountMajor() float64 {
	return FromCents(i.Amount)
}
