package api

import (
	"net/http"

	"github.com/catalog-import-api/internal/models"
	"github.com/catalog-import-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(services *service.Services, log zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		services: services,
		log:      log.With().Str("handler", "checkout").Logger(),
	}
}

// createCheckoutRequest is the POST /v1/checkouts payload
type createCheckoutRequest struct {
	UserID int64                      `json:"user_id" binding:"required"`
	Items  []models.CheckoutItemInput `json:"items"`
}

// Create handles POST /v1/checkouts
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req createCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkout payload"})
		return
	}

	checkout, err := h.services.Checkout.Create(c.Request.Context(), req.UserID, req.Items)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, checkout)
}

// Confirm handles PUT /v1/checkouts/:id/confirm
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	checkout, err := h.services.Checkout.Confirm(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, checkout)
}

// GetByUser handles GET /v1/checkouts/user/:user_id
func (h *CheckoutHandler) GetByUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	checkout, err := h.services.Checkout.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, checkout)
}
