package models

import (
	"time"
)

// AuditOperation is the kind of mutation an audit entry records
type AuditOperation string

const (
	AuditOpCreate AuditOperation = "CREATE"
	AuditOpUpdate AuditOperation = "UPDATE"
	AuditOpDelete AuditOperation = "DELETE"
)

// Audited entity names, matching the storage table names
const (
	EntityProducts  = "products"
	EntityCheckouts = "checkouts"
)

// AuditLog is an immutable record of a create/update/delete operation.
// Entries are append-only; they are never updated or deleted.
type AuditLog struct {
	ID        int64          `json:"id" db:"id"`
	Entity    string         `json:"entity" db:"entity"`
	Operation AuditOperation `json:"operation" db:"operation"`
	Changes   string         `json:"changes" db:"changes"`
	Timestamp time.Time      `json:"timestamp" db:"timestamp"`
}
