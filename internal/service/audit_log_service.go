package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/catalog-import-api/internal/models"
	"github.com/catalog-import-api/internal/repository"
	"github.com/rs/zerolog"
)

// auditLogService is the concrete implementation of AuditLogService
type auditLogService struct {
	repo repository.AuditLogRepository
	log  zerolog.Logger
}

// newAuditLogService creates a new AuditLogService
func newAuditLogService(repo repository.AuditLogRepository, log zerolog.Logger) *auditLogService {
	return &auditLogService{
		repo: repo,
		log:  log.With().Str("service", "audit-log").Logger(),
	}
}

// Record appends one audit entry with the serialized change snapshot.
// The error is returned to the caller: every write path treats a failed
// audit append as grounds for compensating its primary write.
func (s *auditLogService) Record(ctx context.Context, entity string, op models.AuditOperation, changes interface{}) error {
	payload, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("serialize audit changes: %w", err)
	}

	entry := &models.AuditLog{
		Entity:    entity,
		Operation: op,
		Changes:   string(payload),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Error().Err(err).
			Str("entity", entity).
			Str("operation", string(op)).
			Msg("Audit append failed")
		return fmt.Errorf("append audit entry: %w", err)
	}

	s.log.Debug().
		Str("entity", entity).
		Str("operation", string(op)).
		Int64("entry_id", entry.ID).
		Msg("Audit entry recorded")
	return nil
}

// Recent lists the latest audit entries for one entity name
func (s *auditLogService) Recent(ctx context.Context, entity string, limit int) ([]*models.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListByEntity(ctx, entity, limit)
}
