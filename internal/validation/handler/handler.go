// Package handler wires the validation engine to HTTP. It stays thin:
// decode, delegate, encode.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"claimvet/internal/validation"
	dErrors "claimvet/pkg/domain-errors"
)

// Service runs one validation per submission id.
type Service interface {
	ValidateSubmission(ctx context.Context, submissionID uuid.UUID) (*validation.Context, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs the validation handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts validation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/v1/validations/{submissionID}", h.HandleValidate)
}

// HandleValidate runs a validation synchronously and returns the findings.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	submissionID, err := uuid.Parse(chi.URLParam(r, "submissionID"))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "submission id must be a UUID"))
		return
	}

	vctx, err := h.service.ValidateSubmission(ctx, submissionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "validation run failed",
			"submission_id", submissionID,
			"error", err,
		)
		writeError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "validation run served",
		"submission_id", submissionID,
		"has_errors", vctx.HasErrors(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, http.StatusOK, fromContext(submissionID, vctx))
}
