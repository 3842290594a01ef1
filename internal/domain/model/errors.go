package model

import (
	"errors"
)

// ErrInvalidRecord marks a record that violates a model invariant.
var ErrInvalidRecord = errors.New("invalid record")
