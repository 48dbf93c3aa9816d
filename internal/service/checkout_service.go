package service

import (
	"context"
	"fmt"

	"github.com/catalog-import-api/internal/models"
	"github.com/catalog-import-api/internal/repository"
	"github.com/rs/zerolog"
)

// checkoutService is the concrete implementation of CheckoutService
type checkoutService struct {
	repo     repository.CheckoutRepository
	products ProductService
	audit    AuditLogService
	log      zerolog.Logger
}

// newCheckoutService creates a new CheckoutService
func newCheckoutService(repo repository.CheckoutRepository, products ProductService, audit AuditLogService, log zerolog.Logger) *checkoutService {
	return &checkoutService{
		repo:     repo,
		products: products,
		audit:    audit,
		log:      log.With().Str("service", "checkout").Logger(),
	}
}

// Create resolves each line item's product sequentially (later totals
// depend on earlier prices, and one unknown product aborts the rest),
// computes per-line and order totals, persists the aggregate and appends
// its audit entry. On audit failure the persisted checkout is deleted.
func (s *checkoutService) Create(ctx context.Context, userID int64, items []models.CheckoutItemInput) (*models.Checkout, error) {
	if len(items) == 0 {
		return nil, &InvalidInputError{Reason: "items must not be empty"}
	}

	detailed := make([]models.CheckoutItem, 0, len(items))
	var totalPrice float64
	for _, item := range items {
		product, err := s.products.Get(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		lineTotal := product.Price * float64(item.Quantity)
		totalPrice += lineTotal
		detailed = append(detailed, models.CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Total:     lineTotal,
		})
	}

	checkout := &models.Checkout{
		UserID:     userID,
		Items:      detailed,
		TotalPrice: totalPrice,
		Status:     models.CheckoutStatusPending,
	}
	if err := s.repo.Create(ctx, checkout); err != nil {
		return nil, fmt.Errorf("create checkout: %w", err)
	}

	if err := s.audit.Record(ctx, models.EntityCheckouts, models.AuditOpCreate, checkout); err != nil {
		if delErr := s.repo.Delete(ctx, checkout.ID); delErr != nil {
			s.log.Error().Err(delErr).
				Int64("checkout_id", checkout.ID).
				Msg("Compensating delete failed, checkout left without audit trail")
		}
		return nil, &OperationFailedError{Entity: "checkout", Op: "create"}
	}

	s.log.Info().
		Int64("checkout_id", checkout.ID).
		Int64("user_id", userID).
		Int("items", len(detailed)).
		Float64("total_price", totalPrice).
		Msg("Checkout created")
	return checkout, nil
}

// Confirm transitions a checkout to its terminal completed status and
// appends an UPDATE audit entry. On audit failure the status is nulled
// out, re-persisted, and the caller sees a failure.
func (s *checkoutService) Confirm(ctx context.Context, id int64) (*models.Checkout, error) {
	checkout, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get checkout %d: %w", id, err)
	}
	if checkout == nil {
		return nil, &NotFoundError{Resource: "checkout", ID: id}
	}

	checkout.Status = models.CheckoutStatusCompleted
	if err := s.repo.Save(ctx, checkout); err != nil {
		return nil, fmt.Errorf("save checkout %d: %w", id, err)
	}

	if err := s.audit.Record(ctx, models.EntityCheckouts, models.AuditOpUpdate, checkout); err != nil {
		checkout.Status = ""
		if saveErr := s.repo.Save(ctx, checkout); saveErr != nil {
			s.log.Error().Err(saveErr).
				Int64("checkout_id", id).
				Msg("Compensating status reset failed")
		}
		return nil, &OperationFailedError{Entity: "checkout", Op: "confirm"}
	}

	return checkout, nil
}

// GetByUser retrieves the latest checkout of one user
func (s *checkoutService) GetByUser(ctx context.Context, userID int64) (*models.Checkout, error) {
	checkout, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get checkout for user %d: %w", userID, err)
	}
	if checkout == nil {
		return nil, &NotFoundError{Resource: "checkout for user", ID: userID}
	}
	return checkout, nil
}
