package api

import (
	"errors"
	"net/http"

	"github.com/catalog-import-api/internal/excel"
	"github.com/catalog-import-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondError translates service outcomes to status codes: validation
// failures become 400 with the structured violation groups, not-found
// becomes 404, compensated write failures become 400 with a single
// message, everything else is a 500.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var report *excel.ValidationReport
	var notFound *service.NotFoundError
	var invalid *service.InvalidInputError
	var failed *service.OperationFailedError

	switch {
	case errors.As(err, &report):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": report.Sheets,
		})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
	case errors.As(err, &failed):
		c.JSON(http.StatusBadRequest, gin.H{"error": failed.Error()})
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
