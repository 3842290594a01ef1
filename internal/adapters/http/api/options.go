package api

import (
	"time"

	"github.com/okian/stride/pkg/logger"
)

const (
	defaultMaxBodyBytes = 8 << 20
	defaultRateRequests = 120
	defaultRateWindow   = time.Minute
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithCORSOrigins sets the browser origins allowed to call the API.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithRateLimit allows requests per window per client IP. A zero count disables limiting.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(s *Server) {
		if requests >= 0 && window > 0 {
			s.rateRequests = requests
			s.rateWindow = window
		}
	}
}

// WithMaxBodyBytes caps the size of uploaded frames.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithLogger sets the logger for request failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l.Named("api")
		}
	}
}

// WithTrustedProxy makes the server take the client IP from X-Forwarded-For or
// X-Real-IP. Enable it only behind a proxy that overwrites those headers; the
// per-IP rate limit otherwise keys on the socket address.
func WithTrustedProxy(trust bool) Option {
	return func(s *Server) {
		s.trustProxy = trust
	}
}
