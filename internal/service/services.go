package service

import (
	"context"

	"github.com/catalog-import-api/internal/models"
	"github.com/catalog-import-api/internal/repository"
	"github.com/rs/zerolog"
)

// ProductService defines the interface for catalog operations
type ProductService interface {
	ImportFromExcel(ctx context.Context, filePath string) ([]*models.Product, error)
	Create(ctx context.Context, input *models.ProductInput) (*models.Product, error)
	List(ctx context.Context, q models.ProductQuery) (*models.ProductPage, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Update(ctx context.Context, id int64, patch *models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

// CheckoutService defines the interface for checkout operations
type CheckoutService interface {
	Create(ctx context.Context, userID int64, items []models.CheckoutItemInput) (*models.Checkout, error)
	Confirm(ctx context.Context, id int64) (*models.Checkout, error)
	GetByUser(ctx context.Context, userID int64) (*models.Checkout, error)
}

// AuditLogService owns the audit write path; entries are only ever
// appended here, never by external callers.
type AuditLogService interface {
	Record(ctx context.Context, entity string, op models.AuditOperation, changes interface{}) error
	Recent(ctx context.Context, entity string, limit int) ([]*models.AuditLog, error)
}

// Services holds all service interfaces
type Services struct {
	Product  ProductService
	Checkout CheckoutService
	AuditLog AuditLogService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	auditSvc := newAuditLogService(repos.AuditLog, log)
	productSvc := newProductService(repos, auditSvc, log)
	checkoutSvc := newCheckoutService(repos.Checkout, productSvc, auditSvc, log)

	return &Services{
		Product:  productSvc,
		Checkout: checkoutSvc,
		AuditLog: auditSvc,
	}
}
