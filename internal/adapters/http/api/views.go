package api

import (
	"context"
	"net/http"

	"github.com/okian/stride/pkg/logger"
)

// ViewsHandler serves the read-only dashboard views.
type ViewsHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewViewsHandler creates a new views handler.
func NewViewsHandler(deps Dependencies, log logger.Logger) *ViewsHandler {
	return &ViewsHandler{deps: deps, logger: log}
}

// serveView runs one view and writes it, or the classified error.
func serveView[T any](h *ViewsHandler, w http.ResponseWriter, r *http.Request, op string, view func(context.Context) (T, error)) {
	v, err := view(r.Context())
	if err != nil {
		fail(r.Context(), h.logger, w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// HandleProfile handles GET /api/v1/profile.
func (h *ViewsHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, "api.get_profile", h.deps.Profile)
}

// HandleDashboard handles GET /api/v1/dashboard.
func (h *ViewsHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, "api.get_dashboard", h.deps.Dashboard)
}

// HandlePerformance handles GET /api/v1/performance.
func (h *ViewsHandler) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, "api.get_performance", h.deps.Performance)
}

// HandleInjury handles GET /api/v1/injury.
func (h *ViewsHandler) HandleInjury(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, "api.get_injury", h.deps.InjuryReport)
}

// HandleNutrition handles GET /api/v1/nutrition.
func (h *ViewsHandler) HandleNutrition(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, "api.get_nutrition", h.deps.Nutrition)
}

// HandleFinance handles GET /api/v1/finance.
func (h *ViewsHandler) HandleFinance(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, "api.get_finance", h.deps.FinanceCareer)
}

// HandleReport handles GET /api/v1/report.
func (h *ViewsHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, "api.get_report", h.deps.Report)
}
