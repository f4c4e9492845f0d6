package core

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a lookup or delete that matched no row.
var ErrNotFound = errors.New("not found")

// ValidationError rejects malformed input at a public contract
// boundary before any I/O happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// StorageError reports an unreachable store or a failed transaction.
// It is always surfaced to the caller; an empty result set is never
// an error.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// BudgetExhaustedError means the protected system prefix alone does
// not fit the configured token budget. The caller must raise the
// budget or shorten the system prompt.
type BudgetExhaustedError struct {
	Required int
	Budget   int
}

func (e *BudgetExhaustedError) Error() string {
	return fmt.Sprintf("context budget exhausted: system prefix needs %d tokens, budget is %d", e.Required, e.Budget)
}
