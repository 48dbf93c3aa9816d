package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/catalog-import-api/internal/database"
	"github.com/catalog-import-api/internal/models"
)

// checkoutRepo is the concrete implementation of CheckoutRepository
type checkoutRepo struct {
	db *database.DB
}

// NewCheckoutRepo creates a new checkout repository
func NewCheckoutRepo(db *database.DB) CheckoutRepository {
	return &checkoutRepo{db: db}
}

// Create inserts a new checkout aggregate; line items are stored as JSON
func (r *checkoutRepo) Create(ctx context.Context, checkout *models.Checkout) error {
	itemsJSON, err := json.Marshal(checkout.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO checkouts (user_id, items, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	now := time.Now()
	checkout.CreatedAt = now
	checkout.UpdatedAt = now
	return r.db.QueryRowContext(ctx, query,
		checkout.UserID, itemsJSON, checkout.TotalPrice,
		nullString(checkout.Status), now, now,
	).Scan(&checkout.ID)
}

// Save persists the current state of an existing checkout.
// An empty status is written as NULL, the confirm compensation relies on it.
func (r *checkoutRepo) Save(ctx context.Context, checkout *models.Checkout) error {
	itemsJSON, err := json.Marshal(checkout.Items)
	if err != nil {
		return err
	}

	query := `
		UPDATE checkouts
		SET user_id = $2, items = $3, total_price = $4, status = $5, updated_at = $6
		WHERE id = $1
	`
	checkout.UpdatedAt = time.Now()
	_, err = r.db.ExecContext(ctx, query,
		checkout.ID, checkout.UserID, itemsJSON, checkout.TotalPrice,
		nullString(checkout.Status), checkout.UpdatedAt,
	)
	return err
}

// GetByID retrieves a checkout by id, nil when absent
func (r *checkoutRepo) GetByID(ctx context.Context, id int64) (*models.Checkout, error) {
	query := `
		SELECT id, user_id, items, total_price, status, created_at, updated_at
		FROM checkouts WHERE id = $1
	`
	return r.scanCheckout(r.db.QueryRowContext(ctx, query, id))
}

// GetByUserID retrieves a user's checkout, nil when absent
func (r *checkoutRepo) GetByUserID(ctx context.Context, userID int64) (*models.Checkout, error) {
	query := `
		SELECT id, user_id, items, total_price, status, created_at, updated_at
		FROM checkouts WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanCheckout(r.db.QueryRowContext(ctx, query, userID))
}

// Delete removes a checkout row by id
func (r *checkoutRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM checkouts WHERE id = $1", id)
	return err
}

func (r *checkoutRepo) scanCheckout(row rowScanner) (*models.Checkout, error) {
	var checkout models.Checkout
	var itemsJSON []byte
	var status sql.NullString

	err := row.Scan(
		&checkout.ID, &checkout.UserID, &itemsJSON, &checkout.TotalPrice,
		&status, &checkout.CreatedAt, &checkout.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &checkout.Items); err != nil {
		return nil, err
	}
	checkout.Status = status.String
	return &checkout, nil
}
