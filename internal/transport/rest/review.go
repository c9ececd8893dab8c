package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

type reviewService interface {
	FileEntry(ctx context.Context, id uuid.UUID, destination string) (*domain.InboxLogEntry, error)
	DismissEntry(ctx context.Context, id uuid.UUID) (*domain.InboxLogEntry, error)
}

// ReviewHandler serves the dashboard actions on inbox log entries.
type ReviewHandler struct {
	svc reviewService
	log *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc reviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		svc: svc,
		log: logger.With("handler", "review"),
	}
}

type fileEntryRequest struct {
	Destination string `json:"destination"`
}

// Register mounts the review routes on mux.
func (h *ReviewHandler) Register(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	mux.Handle("POST /api/inbox/{id}/file", wrap(http.HandlerFunc(h.File)))
	mux.Handle("POST /api/inbox/{id}/delete", wrap(http.HandlerFunc(h.Delete)))
}

// File files the entry into the requested destination, or into the
// suggested one when the body names none.
func (h *ReviewHandler) File(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req fileEntryRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	entry, err := h.svc.FileEntry(r.Context(), id, req.Destination)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Delete soft-deletes the entry.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	entry, err := h.svc.DismissEntry(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
