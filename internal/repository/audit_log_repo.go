package repository

import (
	"context"

	"github.com/catalog-import-api/internal/database"
	"github.com/catalog-import-api/internal/models"
)

// auditLogRepo is the concrete implementation of AuditLogRepository.
// The table is append-only: no update or delete statements exist here.
type auditLogRepo struct {
	db *database.DB
}

// NewAuditLogRepo creates a new audit log repository
func NewAuditLogRepo(db *database.DB) AuditLogRepository {
	return &auditLogRepo{db: db}
}

// Create appends one audit entry; storage assigns id and timestamp
func (r *auditLogRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (entity, operation, changes)
		VALUES ($1, $2, $3)
		RETURNING id, timestamp
	`
	return r.db.QueryRowContext(ctx, query,
		entry.Entity, entry.Operation, entry.Changes,
	).Scan(&entry.ID, &entry.Timestamp)
}

// ListByEntity returns the most recent entries for one entity name
func (r *auditLogRepo) ListByEntity(ctx context.Context, entity string, limit int) ([]*models.AuditLog, error) {
	query := `
		SELECT id, entity, operation, changes, timestamp
		FROM audit_logs
		WHERE entity = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, entity, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		var entry models.AuditLog
		if err := rows.Scan(&entry.ID, &entry.Entity, &entry.Operation, &entry.Changes, &entry.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
