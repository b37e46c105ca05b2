package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"promjum/internal/progress"
	"promjum/internal/repository"
)

// Summaries loads a learner's progress overview.
type Summaries interface {
	Summary(ctx context.Context, learnerID string) (progress.Summary, error)
}

type ProgressHandler struct {
	summaries Summaries
}

func NewProgressHandler(summaries Summaries) *ProgressHandler {
	return &ProgressHandler{summaries: summaries}
}

func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Get("/learners/me/progress", h.mine)
}

func (h *ProgressHandler) mine(w http.ResponseWriter, r *http.Request) {
	learnerID := learnerFromCookie(r)
	if learnerID == "" {
		writeJSON(w, http.StatusOK, progress.Summary{Recent: []repository.SessionResult{}})
		return
	}
	sum, err := h.summaries.Summary(r.Context(), learnerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
