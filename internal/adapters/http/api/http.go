// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/okian/stride/internal/adapters/narrative"
	"github.com/okian/stride/internal/adapters/provider"
	"github.com/okian/stride/internal/adapters/repository"
	service "github.com/okian/stride/internal/app"
	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/internal/domain/risk"
	"github.com/okian/stride/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Profile(ctx context.Context) (model.AthleteProfile, error)
	Dashboard(ctx context.Context) (service.DashboardView, error)
	Performance(ctx context.Context) (service.PerformanceView, error)
	InjuryReport(ctx context.Context) (service.InjuryView, error)
	Nutrition(ctx context.Context) (service.NutritionView, error)
	FinanceCareer(ctx context.Context) (service.FinanceCareerView, error)
	Report(ctx context.Context) (service.ReportView, error)

	// SubmitFrame queues a practice frame for critique. A non-empty key
	// deduplicates retries.
	SubmitFrame(ctx context.Context, image, key string) (model.CritiqueJob, error)
	Job(ctx context.Context, id string) (model.CritiqueJob, error)
}

// Registrar attaches extra routes, such as the API docs.
type Registrar func(ctx context.Context, r chi.Router)

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	viewsHandler    *ViewsHandler
	practiceHandler *PracticeHandler

	corsOrigins  []string
	rateRequests int
	rateWindow   time.Duration
	maxBodyBytes int64
	trustProxy   bool
	logger       logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		corsOrigins:  []string{"http://localhost:3000", "http://localhost:5173"},
		rateRequests: defaultRateRequests,
		rateWindow:   defaultRateWindow,
		maxBodyBytes: defaultMaxBodyBytes,
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.viewsHandler = NewViewsHandler(deps, s.logger)
	s.practiceHandler = NewPracticeHandler(deps, s.maxBodyBytes, s.logger)
	return s
}

// Routes builds the router. extra registrars run after the API routes.
func (s *Server) Routes(ctx context.Context, extra ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if s.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(corslib.New(corslib.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", idempotencyHeader},
		ExposedHeaders: []string{"Location", "Retry-After"},
	}).Handler)

	r.Get("/healthz", s.healthHandler.HandleHealth)
	r.Get("/stats", s.statsHandler.HandleStats)

	r.Route("/api/v1", func(r chi.Router) {
		if s.rateRequests > 0 {
			r.Use(RateLimitMiddleware(s.rateRequests, s.rateWindow))
		}
		r.Get("/profile", s.viewsHandler.HandleProfile)
		r.Get("/dashboard", s.viewsHandler.HandleDashboard)
		r.Get("/performance", s.viewsHandler.HandlePerformance)
		r.Get("/injury", s.viewsHandler.HandleInjury)
		r.Get("/nutrition", s.viewsHandler.HandleNutrition)
		r.Get("/finance", s.viewsHandler.HandleFinance)
		r.Get("/report", s.viewsHandler.HandleReport)

		r.Post("/practice/frames", s.practiceHandler.HandleSubmitFrame)
		r.Get("/practice/frames/{id}", s.practiceHandler.HandleGetFrame)
	})

	for _, reg := range extra {
		reg(ctx, r)
	}
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// classify maps domain errors to a status and an error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, provider.ErrDataUnavailable):
		return http.StatusServiceUnavailable, "data_unavailable"
	case errors.Is(err, risk.ErrInsufficientData):
		return http.StatusUnprocessableEntity, "insufficient_data"
	case errors.Is(err, ErrBadRequest), errors.Is(err, narrative.ErrInvalidImage):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrBackpressure):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// fail writes err as a JSON error. Server errors are logged.
func fail(ctx context.Context, log logger.Logger, w http.ResponseWriter, op string, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		log.Warn(ctx, "request failed",
			logger.String("op", op),
			logger.String("request_id", middleware.GetReqID(ctx)),
			logger.Error(err),
		)
	}
	writeError(w, status, code, Wrap(op, err))
}
