package provider

import (
	"errors"
)

// Sentinel kinds for provider errors.
var (
	ErrDataUnavailable = errors.New("data unavailable")
	ErrInvalidFixtures = errors.New("invalid fixtures")
)
