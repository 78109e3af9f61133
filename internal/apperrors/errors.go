// Package apperrors defines the sentinel errors shared across the
// service and storage layers. Callers classify failures with errors.Is
// and wrap these with context via fmt.Errorf("...: %w", ...).
package apperrors

import "errors"

// ErrNotFound indicates that a requested project, member or transaction
// could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
// Nothing has been mutated.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates an attempt to reuse a name that must be unique
// (project names globally, member names within a project).
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a mutation that would break referential
// integrity, such as removing a member who is payer on a transaction.
var ErrConflict = errors.New("operation conflicts with existing state")

// ErrProjectClosed indicates a mutation attempted on a closed project.
var ErrProjectClosed = errors.New("project is closed")
