package store

import "errors"

var (
	// ErrNotFound is returned by mutating operations when the target
	// item does not exist. Single-row gets return nil, nil instead.
	ErrNotFound = errors.New("item not found")

	// ErrPermissionDenied is returned when a user tries to modify an
	// item owned by someone else.
	ErrPermissionDenied = errors.New("permission denied")
)
