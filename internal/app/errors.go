package service

import (
	"errors"
)

// Sentinel kinds for service errors. Provider and risk sentinels pass through unchanged.
var (
	ErrBackpressure = errors.New("critique queue is full")
	ErrNotStarted   = errors.New("service not started")
)
