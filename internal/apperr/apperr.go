// Package apperr defines the sentinel errors shared by all services. Check
// them with errors.Is(); the HTTP layer maps each one to a status code.
package apperr

import "errors"

var (
	// ErrValidation indicates malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the referenced entity does not exist, or is
	// outside the caller's category scope on a read path.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied indicates a role or category check failed on a
	// write path.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrConflict indicates the operation is blocked by existing references,
	// e.g. deleting a category that items or users still point at.
	ErrConflict = errors.New("conflict")
)
