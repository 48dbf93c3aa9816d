package service

import (
	"context"
	"fmt"

	"github.com/catalog-import-api/internal/excel"
	"github.com/catalog-import-api/internal/models"
	"github.com/catalog-import-api/internal/repository"
	"github.com/rs/zerolog"
)

// productService is the concrete implementation of ProductService.
// Every mutation funnels its audit failure through the same
// compensate-and-fail pattern: the primary write is undone (or reported
// failed) whenever the paired audit append could not be recorded.
type productService struct {
	repos *repository.Repositories
	audit AuditLogService
	log   zerolog.Logger
}

// newProductService creates a new ProductService
func newProductService(repos *repository.Repositories, audit AuditLogService, log zerolog.Logger) *productService {
	return &productService{
		repos: repos,
		audit: audit,
		log:   log.With().Str("service", "product").Logger(),
	}
}

// ImportFromExcel parses an uploaded workbook against the product sheet
// schema and creates every validated row, in sheet order. Validation
// failures abort before any write; a write or audit failure aborts the
// remaining rows (rows created so far stay persisted, each with its own
// audit entry).
func (s *productService) ImportFromExcel(ctx context.Context, filePath string) ([]*models.Product, error) {
	schema, err := productSheetSchema()
	if err != nil {
		return nil, fmt.Errorf("build product sheet schema: %w", err)
	}

	buckets, err := excel.NewParser(s.log).
		File(filePath).
		AddSheet(schema).
		Build()
	if err != nil {
		return nil, err
	}

	rows := buckets["products"]
	if len(rows) == 0 {
		return nil, &InvalidInputError{
			Reason: fmt.Sprintf("the %s sheet contains no product rows", SheetProducts),
		}
	}

	created := make([]*models.Product, 0, len(rows))
	for _, row := range rows {
		input := productInputFromRow(row)

		s.log.Debug().
			Str("name", input.Name).
			Str("sheet", SheetProducts).
			Msg("Saving imported product")

		product, err := s.Create(ctx, input)
		if err != nil {
			return nil, err
		}
		created = append(created, product)
	}

	s.log.Info().
		Int("count", len(created)).
		Str("file", filePath).
		Msg("Product import completed")
	return created, nil
}

// Create persists a product and appends its audit entry. If the audit
// append fails the just-created row is deleted so it is never observable,
// and the caller sees a failure.
func (s *productService) Create(ctx context.Context, input *models.ProductInput) (*models.Product, error) {
	product := input.Product()
	if err := s.repos.Product.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.audit.Record(ctx, models.EntityProducts, models.AuditOpCreate, input); err != nil {
		if delErr := s.repos.Product.Delete(ctx, product.ID); delErr != nil {
			s.log.Error().Err(delErr).
				Int64("product_id", product.ID).
				Msg("Compensating delete failed, product left without audit trail")
		}
		return nil, &OperationFailedError{Entity: "product", Op: "create"}
	}

	return product, nil
}

// List returns one page of products, optionally filtered
func (s *productService) List(ctx context.Context, q models.ProductQuery) (*models.ProductPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 1
	}

	products, err := s.repos.Product.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	if len(products) == 0 {
		return nil, &NotFoundError{Resource: "products", ID: 0}
	}

	totalItems := len(products)
	totalPages := (totalItems + q.Limit - 1) / q.Limit
	return &models.ProductPage{
		Data: products,
		Meta: models.PageMeta{
			TotalItems:      totalItems,
			CurrentPage:     q.Page,
			ItemsPerPage:    q.Limit,
			TotalPages:      totalPages,
			HasNextPage:     q.Page < totalPages,
			HasPreviousPage: q.Page > 1,
		},
	}, nil
}

// Get retrieves one product by id
func (s *productService) Get(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	if product == nil {
		return nil, &NotFoundError{Resource: "product", ID: id}
	}
	return product, nil
}

// Update merges the provided fields onto an existing product and appends
// an UPDATE audit entry. Identity changes are rejected. On audit failure
// the row is re-saved and the caller sees a failure; the merged values
// remain persisted, storage is not reverted to the pre-patch state.
func (s *productService) Update(ctx context.Context, id int64, patch *models.ProductPatch) (*models.Product, error) {
	if patch.ID != nil {
		return nil, &InvalidInputError{Reason: "unable to change ID"}
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(product)
	if err := s.repos.Product.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("save product %d: %w", id, err)
	}

	if err := s.audit.Record(ctx, models.EntityProducts, models.AuditOpUpdate, patch); err != nil {
		if saveErr := s.repos.Product.Save(ctx, product); saveErr != nil {
			s.log.Error().Err(saveErr).
				Int64("product_id", id).
				Msg("Compensating save failed")
		}
		return nil, &OperationFailedError{Entity: "product", Op: "update"}
	}

	return product, nil
}

// Delete removes a product and appends a DELETE audit entry recording the
// deleted snapshot. If the audit append fails the snapshot is re-inserted
// and the caller sees a failure.
func (s *productService) Delete(ctx context.Context, id int64) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repos.Product.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}

	if err := s.audit.Record(ctx, models.EntityProducts, models.AuditOpDelete, product); err != nil {
		if restoreErr := s.repos.Product.Restore(ctx, product); restoreErr != nil {
			s.log.Error().Err(restoreErr).
				Int64("product_id", id).
				Msg("Compensating restore failed, deleted product could not be re-inserted")
		}
		return &OperationFailedError{Entity: "product", Op: "delete"}
	}

	return nil
}
