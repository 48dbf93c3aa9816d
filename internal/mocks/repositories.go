package mocks

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/catalog-import-api/internal/models"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	Products map[int64]*models.Product
	NextID   int64

	CreateError  error
	SaveError    error
	DeleteError  error
	RestoreError error

	CreateCalls  int
	SaveCalls    int
	DeleteCalls  int
	RestoreCalls int
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		Products: make(map[int64]*models.Product),
		NextID:   1,
	}
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	product.ID = m.NextID
	m.NextID++
	clone := *product
	m.Products[product.ID] = &clone
	return nil
}

func (m *MockProductRepository) Save(ctx context.Context, product *models.Product) error {
	m.SaveCalls++
	if m.SaveError != nil {
		return m.SaveError
	}
	clone := *product
	m.Products[product.ID] = &clone
	return nil
}

func (m *MockProductRepository) Restore(ctx context.Context, product *models.Product) error {
	m.RestoreCalls++
	if m.RestoreError != nil {
		return m.RestoreError
	}
	clone := *product
	m.Products[product.ID] = &clone
	return nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	product, ok := m.Products[id]
	if !ok {
		return nil, nil
	}
	clone := *product
	return &clone, nil
}

func (m *MockProductRepository) Find(ctx context.Context, q models.ProductQuery) ([]*models.Product, error) {
	ids := make([]int64, 0, len(m.Products))
	for id := range m.Products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var matched []*models.Product
	for _, id := range ids {
		p := m.Products[id]
		if q.Search != "" &&
			!strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Search)) &&
			!strings.Contains(strings.ToLower(p.CategoryName), strings.ToLower(q.Search)) {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}

	offset := (q.Page - 1) * q.Limit
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	m.DeleteCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Products, id)
	return nil
}

// MockAuditLogRepository is a mock implementation of AuditLogRepository
type MockAuditLogRepository struct {
	Entries     []*models.AuditLog
	NextID      int64
	CreateError error
	CreateCalls int
}

func NewMockAuditLogRepository() *MockAuditLogRepository {
	return &MockAuditLogRepository{NextID: 1}
}

func (m *MockAuditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	entry.ID = m.NextID
	m.NextID++
	entry.Timestamp = time.Now()
	clone := *entry
	m.Entries = append(m.Entries, &clone)
	return nil
}

func (m *MockAuditLogRepository) ListByEntity(ctx context.Context, entity string, limit int) ([]*models.AuditLog, error) {
	var entries []*models.AuditLog
	for i := len(m.Entries) - 1; i >= 0 && len(entries) < limit; i-- {
		if m.Entries[i].Entity == entity {
			clone := *m.Entries[i]
			entries = append(entries, &clone)
		}
	}
	return entries, nil
}

// ByEntity returns recorded entries for one entity in append order
func (m *MockAuditLogRepository) ByEntity(entity string) []*models.AuditLog {
	var entries []*models.AuditLog
	for _, e := range m.Entries {
		if e.Entity == entity {
			entries = append(entries, e)
		}
	}
	return entries
}

// MockCheckoutRepository is a mock implementation of CheckoutRepository
type MockCheckoutRepository struct {
	Checkouts map[int64]*models.Checkout
	NextID    int64

	CreateError error
	SaveError   error
	DeleteError error

	SaveCalls   int
	DeleteCalls int
}

func NewMockCheckoutRepository() *MockCheckoutRepository {
	return &MockCheckoutRepository{
		Checkouts: make(map[int64]*models.Checkout),
		NextID:    1,
	}
}

func (m *MockCheckoutRepository) Create(ctx context.Context, checkout *models.Checkout) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	checkout.ID = m.NextID
	m.NextID++
	now := time.Now()
	checkout.CreatedAt = now
	checkout.UpdatedAt = now
	clone := *checkout
	m.Checkouts[checkout.ID] = &clone
	return nil
}

func (m *MockCheckoutRepository) Save(ctx context.Context, checkout *models.Checkout) error {
	m.SaveCalls++
	if m.SaveError != nil {
		return m.SaveError
	}
	checkout.UpdatedAt = time.Now()
	clone := *checkout
	m.Checkouts[checkout.ID] = &clone
	return nil
}

func (m *MockCheckoutRepository) GetByID(ctx context.Context, id int64) (*models.Checkout, error) {
	checkout, ok := m.Checkouts[id]
	if !ok {
		return nil, nil
	}
	clone := *checkout
	return &clone, nil
}

func (m *MockCheckoutRepository) GetByUserID(ctx context.Context, userID int64) (*models.Checkout, error) {
	var latest *models.Checkout
	for _, checkout := range m.Checkouts {
		if checkout.UserID != userID {
			continue
		}
		if latest == nil || checkout.CreatedAt.After(latest.CreatedAt) {
			latest = checkout
		}
	}
	if latest == nil {
		return nil, nil
	}
	clone := *latest
	return &clone, nil
}

func (m *MockCheckoutRepository) Delete(ctx context.Context, id int64) error {
	m.DeleteCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Checkouts, id)
	return nil
}
