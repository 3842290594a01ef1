package narrative

import (
	"errors"
)

// Sentinel kinds for narrative errors. None of them leave the Gateway.
var (
	ErrNarrativeUnavailable = errors.New("narrative unavailable")
	ErrNoAPIKey             = errors.New("genai api key is required")
	ErrEmptyResponse        = errors.New("empty narrative response")
	ErrMalformedResponse    = errors.New("malformed narrative response")
	ErrInvalidImage         = errors.New("invalid image payload")
	ErrGeneratorPanic       = errors.New("narrative generator panicked")
)
