package repository

import (
	"context"

	"github.com/catalog-import-api/internal/database"
	"github.com/catalog-import-api/internal/models"
)

// ProductRepository defines the interface for product data operations.
// Restore re-inserts a previously deleted row with its original identity;
// it exists for the delete compensation path.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	Save(ctx context.Context, product *models.Product) error
	Restore(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Find(ctx context.Context, q models.ProductQuery) ([]*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

// AuditLogRepository defines the interface for the append-only audit trail
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	ListByEntity(ctx context.Context, entity string, limit int) ([]*models.AuditLog, error)
}

// CheckoutRepository defines the interface for checkout aggregates
type CheckoutRepository interface {
	Create(ctx context.Context, checkout *models.Checkout) error
	Save(ctx context.Context, checkout *models.Checkout) error
	GetByID(ctx context.Context, id int64) (*models.Checkout, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Checkout, error)
	Delete(ctx context.Context, id int64) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Product  ProductRepository
	AuditLog AuditLogRepository
	Checkout CheckoutRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Product:  NewProductRepo(db),
		AuditLog: NewAuditLogRepo(db),
		Checkout: NewCheckoutRepo(db),
	}
}
