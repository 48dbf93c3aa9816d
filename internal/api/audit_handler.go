package api

import (
	"net/http"
	"strconv"

	"github.com/catalog-import-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuditLogHandler exposes the read side of the audit trail
type AuditLogHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuditLogHandler creates a new AuditLogHandler
func NewAuditLogHandler(services *service.Services, log zerolog.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		services: services,
		log:      log.With().Str("handler", "audit-log").Logger(),
	}
}

// List handles GET /v1/audit-logs?entity=products&limit=50
func (h *AuditLogHandler) List(c *gin.Context) {
	entity := c.Query("entity")
	if entity == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity parameter is required (products, checkouts)"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.services.AuditLog.Recent(c.Request.Context(), entity, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entity":  entity,
		"count":   len(entries),
		"entries": entries,
	})
}
