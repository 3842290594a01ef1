package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/pkg/logger"
)

// idempotencyHeader lets clients retry a submission without queueing it twice.
const idempotencyHeader = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

// frameRequest mirrors the OpenAPI schema for POST /api/v1/practice/frames.
type frameRequest struct {
	Image string `json:"image"`
}

func (f frameRequest) validate() error {
	if strings.TrimSpace(f.Image) == "" {
		return errors.New("missing image")
	}
	return nil
}

type ackResponse struct {
	ID     string          `json:"id"`
	Status model.JobStatus `json:"status"`
}

// PracticeHandler accepts practice frames and reports their critiques.
type PracticeHandler struct {
	deps         Dependencies
	maxBodyBytes int64
	logger       logger.Logger
}

// NewPracticeHandler creates a new practice handler.
func NewPracticeHandler(deps Dependencies, maxBodyBytes int64, log logger.Logger) *PracticeHandler {
	return &PracticeHandler{deps: deps, maxBodyBytes: maxBodyBytes, logger: log}
}

// HandleSubmitFrame handles POST /api/v1/practice/frames.
func (h *PracticeHandler) HandleSubmitFrame(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_frame"
	var req frameRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	key := strings.TrimSpace(r.Header.Get(idempotencyHeader))
	if len(key) > maxIdempotencyKeyLen {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("idempotency key too long")))
		return
	}

	job, err := h.deps.SubmitFrame(r.Context(), req.Image, key)
	if err != nil {
		fail(r.Context(), h.logger, w, op, err)
		return
	}
	w.Header().Set("Location", "/api/v1/practice/frames/"+job.ID)
	writeJSON(w, http.StatusAccepted, ackResponse{ID: job.ID, Status: job.Status})
}

// HandleGetFrame handles GET /api/v1/practice/frames/{id}.
func (h *PracticeHandler) HandleGetFrame(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_frame"
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	job, err := h.deps.Job(r.Context(), id)
	if err != nil {
		fail(r.Context(), h.logger, w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}
