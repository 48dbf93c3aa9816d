package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/catalog-import-api/internal/excel"
	"github.com/catalog-import-api/internal/mocks"
	"github.com/catalog-import-api/internal/models"
	"github.com/catalog-import-api/internal/repository"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

type productFixture struct {
	svc      *productService
	products *mocks.MockProductRepository
	audit    *mocks.MockAuditLogRepository
}

func newProductFixture() *productFixture {
	products := mocks.NewMockProductRepository()
	audit := mocks.NewMockAuditLogRepository()
	repos := &repository.Repositories{
		Product:  products,
		AuditLog: audit,
		Checkout: mocks.NewMockCheckoutRepository(),
	}
	auditSvc := newAuditLogService(audit, zerolog.Nop())
	return &productFixture{
		svc:      newProductService(repos, auditSvc, zerolog.Nop()),
		products: products,
		audit:    audit,
	}
}

func sampleInput() *models.ProductInput {
	return &models.ProductInput{
		CategoryID:   7,
		CategoryName: "Fasteners",
		SKU:          "SKU-001",
		Name:         "Steel Bolt",
		Description:  "M8 hex bolt",
		Weight:       0.2,
		Width:        1,
		Length:       4,
		Height:       1,
		Image:        "bolt.png",
		Price:        19.99,
	}
}

func TestProductCreate(t *testing.T) {
	f := newProductFixture()

	product, err := f.svc.Create(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if product.ID == 0 {
		t.Error("Expected assigned ID")
	}
	if _, ok := f.products.Products[product.ID]; !ok {
		t.Error("Product not persisted")
	}

	entries := f.audit.ByEntity(models.EntityProducts)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 audit entry, got %d", len(entries))
	}
	if entries[0].Operation != models.AuditOpCreate {
		t.Errorf("Expected CREATE audit entry, got %s", entries[0].Operation)
	}
	if !strings.Contains(entries[0].Changes, "Steel Bolt") {
		t.Errorf("Audit changes should carry the input snapshot, got %s", entries[0].Changes)
	}
}

func TestProductCreateAuditFailureCompensates(t *testing.T) {
	f := newProductFixture()
	f.audit.CreateError = errors.New("audit store down")

	_, err := f.svc.Create(context.Background(), sampleInput())
	if err == nil {
		t.Fatal("Expected failure when audit append fails")
	}

	var failed *OperationFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Expected *OperationFailedError, got %T: %v", err, err)
	}
	if failed.Error() != "the product create has failed" {
		t.Errorf("Unexpected message: %s", failed.Error())
	}

	// The compensating delete removes the row created before the audit append
	if f.products.DeleteCalls != 1 {
		t.Errorf("Expected 1 compensating delete, got %d", f.products.DeleteCalls)
	}
	if len(f.products.Products) != 0 {
		t.Errorf("Product should not survive a failed audit append, store has %d", len(f.products.Products))
	}
}

func TestProductUpdate(t *testing.T) {
	f := newProductFixture()
	created, err := f.svc.Create(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newName := "Titanium Bolt"
	newPrice := 49.99
	updated, err := f.svc.Update(context.Background(), created.ID, &models.ProductPatch{
		Name:  &newName,
		Price: &newPrice,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != newName || updated.Price != newPrice {
		t.Errorf("Patch not applied: %+v", updated)
	}
	if updated.SKU != "SKU-001" {
		t.Errorf("Untouched fields must survive the merge, got SKU %s", updated.SKU)
	}

	entries := f.audit.ByEntity(models.EntityProducts)
	if len(entries) != 2 || entries[1].Operation != models.AuditOpUpdate {
		t.Fatalf("Expected CREATE then UPDATE audit entries, got %+v", entries)
	}
}

func TestProductUpdateRejectsIDChange(t *testing.T) {
	f := newProductFixture()
	created, _ := f.svc.Create(context.Background(), sampleInput())

	otherID := int64(99)
	_, err := f.svc.Update(context.Background(), created.ID, &models.ProductPatch{ID: &otherID})

	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected *InvalidInputError, got %T: %v", err, err)
	}
	if f.products.SaveCalls != 0 {
		t.Error("ID change must be rejected before any save")
	}
}

func TestProductUpdateAuditFailure(t *testing.T) {
	f := newProductFixture()
	created, _ := f.svc.Create(context.Background(), sampleInput())
	f.audit.CreateError = errors.New("audit store down")

	newName := "Titanium Bolt"
	_, err := f.svc.Update(context.Background(), created.ID, &models.ProductPatch{Name: &newName})

	var failed *OperationFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Expected *OperationFailedError, got %T: %v", err, err)
	}
	// Primary save plus the compensating re-save
	if f.products.SaveCalls != 2 {
		t.Errorf("Expected 2 saves, got %d", f.products.SaveCalls)
	}
	// The merged values stay persisted; only the failure is reported
	if f.products.Products[created.ID].Name != newName {
		t.Errorf("Merged state expected to remain, got %s", f.products.Products[created.ID].Name)
	}
}

func TestProductDelete(t *testing.T) {
	f := newProductFixture()
	created, _ := f.svc.Create(context.Background(), sampleInput())

	if err := f.svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(f.products.Products) != 0 {
		t.Error("Product should be removed")
	}

	entries := f.audit.ByEntity(models.EntityProducts)
	last := entries[len(entries)-1]
	if last.Operation != models.AuditOpDelete {
		t.Errorf("Expected DELETE audit entry, got %s", last.Operation)
	}
	if !strings.Contains(last.Changes, "Steel Bolt") {
		t.Errorf("DELETE entry should record the removed snapshot, got %s", last.Changes)
	}
}

func TestProductDeleteAuditFailureRestores(t *testing.T) {
	f := newProductFixture()
	created, _ := f.svc.Create(context.Background(), sampleInput())
	f.audit.CreateError = errors.New("audit store down")

	err := f.svc.Delete(context.Background(), created.ID)

	var failed *OperationFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Expected *OperationFailedError, got %T: %v", err, err)
	}
	if f.products.RestoreCalls != 1 {
		t.Errorf("Expected 1 compensating restore, got %d", f.products.RestoreCalls)
	}
	restored, ok := f.products.Products[created.ID]
	if !ok {
		t.Fatal("Deleted product should be re-inserted")
	}
	if restored.Name != "Steel Bolt" {
		t.Errorf("Restored snapshot mismatch: %+v", restored)
	}
}

func TestProductGetNotFound(t *testing.T) {
	f := newProductFixture()

	_, err := f.svc.Get(context.Background(), 42)

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected *NotFoundError, got %T: %v", err, err)
	}
	if notFound.Error() != "product with ID 42 not found" {
		t.Errorf("Unexpected message: %s", notFound.Error())
	}
}

func TestProductList(t *testing.T) {
	f := newProductFixture()
	for i := 0; i < 3; i++ {
		input := sampleInput()
		input.SKU = input.SKU + string(rune('A'+i))
		if _, err := f.svc.Create(context.Background(), input); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	page, err := f.svc.List(context.Background(), models.ProductQuery{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page.Data) != 2 {
		t.Errorf("Expected 2 products on the page, got %d", len(page.Data))
	}
	// Meta reflects the fetched page, not a separate count query
	if page.Meta.CurrentPage != 1 || page.Meta.ItemsPerPage != 2 || page.Meta.TotalItems != 2 {
		t.Errorf("Unexpected page meta: %+v", page.Meta)
	}

	_, err = f.svc.List(context.Background(), models.ProductQuery{Page: 1, Limit: 10, Search: "no-such-name"})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Empty result should report not found, got %T: %v", err, err)
	}
}

// productWorkbook writes an import fixture with the full 11-column layout
func productWorkbook(t *testing.T, dataRows ...[]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", SheetProducts)

	header := []interface{}{
		"Category ID", "Category Name", "SKU", "Name", "Description",
		"Weight", "Width", "Length", "Height", "Image", "Price",
	}
	rows := append([][]interface{}{header}, dataRows...)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			f.SetCellValue(SheetProducts, cell, v)
		}
	}

	path := filepath.Join(t.TempDir(), "products.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	return path
}

func TestImportFromExcel(t *testing.T) {
	f := newProductFixture()
	path := productWorkbook(t,
		[]interface{}{7, "Fasteners", "SKU-001", "Steel Bolt", "M8 hex bolt", 0.2, 1, 4, 1, "bolt.png", 19.99},
		[]interface{}{7, "Fasteners", "SKU-002", "Brass Nut", "M8 nut", 0.1, 1, 1, 1, "nut.png", 4.5},
	)

	created, err := f.svc.ImportFromExcel(context.Background(), path)
	if err != nil {
		t.Fatalf("ImportFromExcel failed: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(created))
	}
	if created[0].Name != "Steel Bolt" || created[1].Name != "Brass Nut" {
		t.Errorf("Rows imported out of order: %s, %s", created[0].Name, created[1].Name)
	}
	if created[0].CategoryID != 7 || created[0].Price != 19.99 {
		t.Errorf("Field conversion mismatch: %+v", created[0])
	}

	if len(f.products.Products) != 2 {
		t.Errorf("Expected 2 persisted products, got %d", len(f.products.Products))
	}
	entries := f.audit.ByEntity(models.EntityProducts)
	if len(entries) != 2 {
		t.Errorf("Expected one CREATE audit entry per row, got %d", len(entries))
	}
}

func TestImportFromExcelValidationFailure(t *testing.T) {
	f := newProductFixture()
	path := productWorkbook(t,
		[]interface{}{7, "Fasteners", "SKU-001", "Steel Bolt", "M8 hex bolt", 0.2, 1, 4, 1, "bolt.png", "not-a-price"},
	)

	_, err := f.svc.ImportFromExcel(context.Background(), path)

	var report *excel.ValidationReport
	if !errors.As(err, &report) {
		t.Fatalf("Expected *excel.ValidationReport, got %T: %v", err, err)
	}
	if len(f.products.Products) != 0 {
		t.Error("Validation failure must not persist anything")
	}
	if f.audit.CreateCalls != 0 {
		t.Error("Validation failure must not touch the audit log")
	}
}

func TestImportFromExcelEmptySheet(t *testing.T) {
	f := newProductFixture()
	path := productWorkbook(t)

	_, err := f.svc.ImportFromExcel(context.Background(), path)

	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected *InvalidInputError, got %T: %v", err, err)
	}
}
