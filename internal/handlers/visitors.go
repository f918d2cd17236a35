package handlers

import (
	"context"
	"net/http"
	"time"
)

type VisitorResponse struct {
	Count int64 `json:"count"`
}

// HitVisitors bumps the site visit counter and returns the new total.
func (h *Handler) HitVisitors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := h.Counters.IncrementVisitors(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, VisitorResponse{Count: count})
}

// GetVisitors returns the current visit count without bumping it.
func (h *Handler) GetVisitors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := h.Counters.VisitorCount(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, VisitorResponse{Count: count})
}
