package repository

import (
	"context"
	"database/sql"

	"github.com/catalog-import-api/internal/database"
	"github.com/catalog-import-api/internal/models"
)

// productRepo is the concrete implementation of ProductRepository
type productRepo struct {
	db *database.DB
}

// NewProductRepo creates a new product repository
func NewProductRepo(db *database.DB) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, category_id, category_name, sku, name, description, weight, width, length, height, image, price`

// Create inserts a new product; storage assigns the identity
func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (category_id, category_name, sku, name, description, weight, width, length, height, image, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		product.CategoryID, product.CategoryName, product.SKU, product.Name,
		nullString(product.Description),
		product.Weight, product.Width, product.Length, product.Height,
		product.Image, product.Price,
	).Scan(&product.ID)
}

// Save persists the current state of an existing product
func (r *productRepo) Save(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET category_id = $2, category_name = $3, sku = $4, name = $5, description = $6,
		    weight = $7, width = $8, length = $9, height = $10, image = $11, price = $12
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.CategoryID, product.CategoryName, product.SKU, product.Name,
		nullString(product.Description),
		product.Weight, product.Width, product.Length, product.Height,
		product.Image, product.Price,
	)
	return err
}

// Restore re-inserts a deleted product under its original id
func (r *productRepo) Restore(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, category_id, category_name, sku, name, description, weight, width, length, height, image, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.CategoryID, product.CategoryName, product.SKU, product.Name,
		nullString(product.Description),
		product.Weight, product.Width, product.Length, product.Height,
		product.Image, product.Price,
	)
	return err
}

// GetByID retrieves a product by id, nil when absent
func (r *productRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Find lists products for one page, optionally filtered by a
// case-insensitive substring match on name or category name
func (r *productRepo) Find(ctx context.Context, q models.ProductQuery) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR category_name ILIKE '%' || $1 || '%')
		ORDER BY id
		LIMIT $2 OFFSET $3
	`
	offset := (q.Page - 1) * q.Limit
	rows, err := r.db.QueryContext(ctx, query, q.Search, q.Limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// Delete removes a product row by id
func (r *productRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var product models.Product
	var description sql.NullString

	err := row.Scan(
		&product.ID, &product.CategoryID, &product.CategoryName, &product.SKU,
		&product.Name, &description,
		&product.Weight, &product.Width, &product.Length, &product.Height,
		&product.Image, &product.Price,
	)
	if err != nil {
		return nil, err
	}
	product.Description = description.String
	return &product, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
