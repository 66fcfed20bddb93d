package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/swapdash/dashboard/internal/core/domain"
	"github.com/swapdash/dashboard/internal/core/ports"
)

const collectionInvoices = "invoices"

type InvoiceRepository struct {
	col *mongo.Collection
}

func NewInvoiceRepository(db *mongo.Database) *InvoiceRepository {
	return &InvoiceRepository{col: db.Collection(collectionInvoices)}
}

// mongoInvoice keys documents by the application-generated invoice id.
// Dates are stored as YYYY-MM-DD strings, which sort chronologically.
type mongoInvoice struct {
	ID         string `bson:"_id"`
	CustomerID string `bson:"customer_id"`
	Amount     int64  `bson:"amount"`
	Status     string `bson:"status"`
	Date       string `bson:"date"`
}

func toInvoiceDoc(inv *domain.Invoice) mongoInvoice {
	return mongoInvoice{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     inv.Amount,
		Status:     string(inv.Status),
		Date:       inv.Date,
	}
}

func (d mongoInvoice) toDomain() *domain.Invoice {
	return &domain.Invoice{
		ID:         d.ID,
		CustomerID: d.CustomerID,
		Amount:     d.Amount,
		Status:     domain.InvoiceStatus(d.Status),
		Date:       d.Date,
	}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	if !inv.Status.Valid() {
		return fmt.Errorf("insert invoice: %w", domain.ErrInvalidStatus)
	}
	if !domain.ValidAmount(inv.Amount) {
		return fmt.Errorf("insert invoice: %w", domain.ErrAmountRange)
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toInvoiceDoc(inv)); err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update returns domain.ErrInvoiceNotFound when no document has id.
func (r *InvoiceRepository) Update(ctx context.Context, id string, changes ports.InvoiceChanges) error {
	if !changes.Status.Valid() {
		return fmt.Errorf("update invoice: %w", domain.ErrInvalidStatus)
	}
	if !domain.ValidAmount(changes.Amount) {
		return fmt.Errorf("update invoice: %w", domain.ErrAmountRange)
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"customer_id": changes.CustomerID,
		"amount":      changes.Amount,
		"status":      string(changes.Status),
	}})
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// Delete removes the invoice with id. No matching document is not an error.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoInvoice
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns every invoice, newest date first.
func (r *InvoiceRepository) List(ctx context.Context) ([]*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	var docs []mongoInvoice
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode invoices: %w", err)
	}

	out := make([]*domain.Invoice, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

// EnsureIndexes creates the indexes backing List.
func (r *InvoiceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
	})
	return err
}
