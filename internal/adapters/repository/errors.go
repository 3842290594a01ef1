package repository

import "errors"

// Sentinel kinds for critique store errors.
var (
	ErrNotFound    = errors.New("critique job not found")
	ErrDuplicateID = errors.New("duplicate critique job id")
)
