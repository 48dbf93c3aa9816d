package service

import (
	"fmt"
)

// NotFoundError signals a referenced entity id is absent from storage.
// Nothing was written, so no compensation applies.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Resource, e.ID)
}

// InvalidInputError signals the caller's request is malformed
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

// OperationFailedError is the caller-visible outcome when the audit append
// for a successful primary write failed and the write was compensated.
// The operation as a whole never reports success unless both the primary
// write and its audit trail exist together.
type OperationFailedError struct {
	Entity string
	Op     string
}

func (e *OperationFailedError) Error() string {
	return fmt.Sprintf("the %s %s has failed", e.Entity, e.Op)
}
