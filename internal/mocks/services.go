package mocks

import (
	"context"

	"github.com/catalog-import-api/internal/models"
)

// MockProductService is a mock implementation of service.ProductService
type MockProductService struct {
	ImportResult []*models.Product
	ImportError  error
	ImportCalls  int

	Products    map[int64]*models.Product
	CreateError error
	UpdateError error
	DeleteError error
	ListResult  *models.ProductPage
	ListError   error
	GetError    error
}

func NewMockProductService() *MockProductService {
	return &MockProductService{Products: make(map[int64]*models.Product)}
}

func (m *MockProductService) ImportFromExcel(ctx context.Context, filePath string) ([]*models.Product, error) {
	m.ImportCalls++
	if m.ImportError != nil {
		return nil, m.ImportError
	}
	return m.ImportResult, nil
}

func (m *MockProductService) Create(ctx context.Context, input *models.ProductInput) (*models.Product, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	product := input.Product()
	product.ID = int64(len(m.Products) + 1)
	m.Products[product.ID] = product
	return product, nil
}

func (m *MockProductService) List(ctx context.Context, q models.ProductQuery) (*models.ProductPage, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.ListResult, nil
}

func (m *MockProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Products[id], nil
}

func (m *MockProductService) Update(ctx context.Context, id int64, patch *models.ProductPatch) (*models.Product, error) {
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}
	product := m.Products[id]
	patch.Apply(product)
	return product, nil
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Products, id)
	return nil
}

// MockCheckoutService is a mock implementation of service.CheckoutService
type MockCheckoutService struct {
	CreateResult  *models.Checkout
	CreateError   error
	ConfirmResult *models.Checkout
	ConfirmError  error
	GetResult     *models.Checkout
	GetError      error
}

func NewMockCheckoutService() *MockCheckoutService {
	return &MockCheckoutService{}
}

func (m *MockCheckoutService) Create(ctx context.Context, userID int64, items []models.CheckoutItemInput) (*models.Checkout, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	return m.CreateResult, nil
}

func (m *MockCheckoutService) Confirm(ctx context.Context, id int64) (*models.Checkout, error) {
	if m.ConfirmError != nil {
		return nil, m.ConfirmError
	}
	return m.ConfirmResult, nil
}

func (m *MockCheckoutService) GetByUser(ctx context.Context, userID int64) (*models.Checkout, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.GetResult, nil
}

// MockAuditLogService is a mock implementation of service.AuditLogService
type MockAuditLogService struct {
	Recorded    []*models.AuditLog
	RecordError error
}

func NewMockAuditLogService() *MockAuditLogService {
	return &MockAuditLogService{}
}

func (m *MockAuditLogService) Record(ctx context.Context, entity string, op models.AuditOperation, changes interface{}) error {
	if m.RecordError != nil {
		return m.RecordError
	}
	m.Recorded = append(m.Recorded, &models.AuditLog{Entity: entity, Operation: op})
	return nil
}

func (m *MockAuditLogService) Recent(ctx context.Context, entity string, limit int) ([]*models.AuditLog, error) {
	var entries []*models.AuditLog
	for _, e := range m.Recorded {
		if e.Entity == entity {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
