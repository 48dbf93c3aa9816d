package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/catalog-import-api/internal/config"
	"github.com/catalog-import-api/internal/excel"
	"github.com/catalog-import-api/internal/mocks"
	"github.com/catalog-import-api/internal/models"
	"github.com/catalog-import-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type apiFixture struct {
	router    *gin.Engine
	products  *mocks.MockProductService
	checkouts *mocks.MockCheckoutService
	audit     *mocks.MockAuditLogService
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := mocks.NewMockProductService()
	checkouts := mocks.NewMockCheckoutService()
	audit := mocks.NewMockAuditLogService()
	services := &service.Services{
		Product:  products,
		Checkout: checkouts,
		AuditLog: audit,
	}
	cfg := &config.Config{
		Upload: config.UploadConfig{
			MaxUploadSize: 10 * 1024 * 1024,
			Dir:           t.TempDir(),
		},
	}
	return &apiFixture{
		router:    NewRouter(services, cfg, zerolog.Nop()),
		products:  products,
		checkouts: checkouts,
		audit:     audit,
	}
}

func (f *apiFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body: %v (%s)", err, w.Body.String())
	}
	return body
}

func TestHealthEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", body["status"])
	}
	if body["service"] != "catalog-import-api" {
		t.Errorf("Unexpected service name: %v", body["service"])
	}
}

func TestProductGet(t *testing.T) {
	f := newAPIFixture(t)
	f.products.Products[5] = &models.Product{ID: 5, Name: "Steel Bolt", Price: 19.99}

	w := f.do(t, http.MethodGet, "/v1/products/5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["name"] != "Steel Bolt" {
		t.Errorf("Unexpected product: %v", body)
	}
}

func TestProductGetNotFound(t *testing.T) {
	f := newAPIFixture(t)
	f.products.GetError = &service.NotFoundError{Resource: "product", ID: 99}

	w := f.do(t, http.MethodGet, "/v1/products/99", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["error"] != "product with ID 99 not found" {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
}

func TestProductGetInvalidID(t *testing.T) {
	f := newAPIFixture(t)

	for _, id := range []string{"abc", "0", "-3"} {
		w := f.do(t, http.MethodGet, "/v1/products/"+id, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("id %q: expected 400, got %d", id, w.Code)
		}
	}
}

func TestProductCreateEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/v1/products", models.ProductInput{
		CategoryID: 7, CategoryName: "Fasteners", SKU: "SKU-001",
		Name: "Steel Bolt", Price: 19.99,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["id"] == nil || body["name"] != "Steel Bolt" {
		t.Errorf("Unexpected response: %v", body)
	}
}

func TestProductUpdateRejectedInput(t *testing.T) {
	f := newAPIFixture(t)
	f.products.UpdateError = &service.InvalidInputError{Reason: "unable to change ID"}

	w := f.do(t, http.MethodPut, "/v1/products/5", map[string]interface{}{"id": 9})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["error"] != "unable to change ID" {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
}

func TestProductDeleteCompensatedFailure(t *testing.T) {
	f := newAPIFixture(t)
	f.products.DeleteError = &service.OperationFailedError{Entity: "product", Op: "delete"}

	w := f.do(t, http.MethodDelete, "/v1/products/5", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["error"] != "the product delete has failed" {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
}

func uploadRequest(t *testing.T, filename string, content []byte) (*http.Request, error) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/products/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

func TestProductUploadRejectsNonXLSX(t *testing.T) {
	f := newAPIFixture(t)

	req, err := uploadRequest(t, "products.csv", []byte("name,price"))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if f.products.ImportCalls != 0 {
		t.Error("Rejected upload must not reach the import service")
	}
}

func TestProductUploadRequiresFile(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/v1/products/upload", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestProductUpload(t *testing.T) {
	f := newAPIFixture(t)
	f.products.ImportResult = []*models.Product{
		{ID: 1, Name: "Steel Bolt"},
		{ID: 2, Name: "Brass Nut"},
	}

	req, err := uploadRequest(t, "products.xlsx", []byte("stand-in workbook bytes"))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["count"] != float64(2) {
		t.Errorf("Expected count 2, got %v", body["count"])
	}
	if f.products.ImportCalls != 1 {
		t.Errorf("Expected 1 import call, got %d", f.products.ImportCalls)
	}
}

func TestProductUploadValidationFailure(t *testing.T) {
	f := newAPIFixture(t)
	f.products.ImportError = &excel.ValidationReport{
		Sheets: []excel.SheetViolations{{
			SheetName: "Products",
			Violations: []excel.Violation{{
				Sheet:   "Products",
				Column:  "B",
				Row:     3,
				Message: "PRICE must be of type number or length limit is 255 (row 3)",
			}},
		}},
	}

	req, err := uploadRequest(t, "products.xlsx", []byte("stand-in workbook bytes"))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid_columns") {
		t.Errorf("Expected structured violation groups, got %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "PRICE must be of type number") {
		t.Errorf("Expected violation message, got %s", w.Body.String())
	}
}

func TestCheckoutCreateEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	f.checkouts.CreateResult = &models.Checkout{
		ID: 9, UserID: 42, TotalPrice: 39.98, Status: models.CheckoutStatusPending,
	}

	w := f.do(t, http.MethodPost, "/v1/checkouts", map[string]interface{}{
		"user_id": 42,
		"items":   []map[string]interface{}{{"product_id": 5, "quantity": 2}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["status"] != "pending" {
		t.Errorf("Unexpected response: %v", body)
	}
}

func TestCheckoutCreateMissingUser(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/v1/checkouts", map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": 5, "quantity": 2}},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestCheckoutConfirmEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	f.checkouts.ConfirmResult = &models.Checkout{
		ID: 9, UserID: 42, Status: models.CheckoutStatusCompleted,
	}

	w := f.do(t, http.MethodPut, "/v1/checkouts/9/confirm", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["status"] != "completed" {
		t.Errorf("Expected completed checkout, got %v", body)
	}
}

func TestCheckoutConfirmFailedAudit(t *testing.T) {
	f := newAPIFixture(t)
	f.checkouts.ConfirmError = &service.OperationFailedError{Entity: "checkout", Op: "confirm"}

	w := f.do(t, http.MethodPut, "/v1/checkouts/9/confirm", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["error"] != "the checkout confirm has failed" {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
}

func TestCheckoutGetByUserEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	f.checkouts.GetResult = &models.Checkout{ID: 9, UserID: 42}

	w := f.do(t, http.MethodGet, "/v1/checkouts/user/42", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}

func TestAuditLogList(t *testing.T) {
	f := newAPIFixture(t)
	f.audit.Recorded = []*models.AuditLog{
		{Entity: models.EntityProducts, Operation: models.AuditOpCreate},
		{Entity: models.EntityCheckouts, Operation: models.AuditOpCreate},
	}

	w := f.do(t, http.MethodGet, "/v1/audit-logs?entity=products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["count"] != float64(1) {
		t.Errorf("Expected 1 products entry, got %v", body["count"])
	}
}

func TestAuditLogListRequiresEntity(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodGet, "/v1/audit-logs", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestUnhandledErrorBecomes500(t *testing.T) {
	f := newAPIFixture(t)
	f.products.GetError = errors.New("database down")

	w := f.do(t, http.MethodGet, "/v1/products/5", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}
}
