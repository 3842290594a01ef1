package risk

import (
	"errors"
)

// ErrInsufficientData is returned when there is no performance log to score.
var ErrInsufficientData = errors.New("insufficient data: no performance logs")
