// Package customerr holds the typed errors shared across the model layer.
package customerr

import "fmt"

// ValidationError reports a malformed record field on create or update.
// No write happens when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an update or delete referencing an unknown record.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("expense %s not found", e.ID)
}
