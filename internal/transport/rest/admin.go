package rest

import (
	"context"
	"log/slog"
	"net/http"
)

type instructionsService interface {
	PinInstructions(ctx context.Context, channel string) (string, error)
}

// AdminHandler serves operator endpoints. Authentication is applied by middleware.
type AdminHandler struct {
	guide instructionsService
	log   *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(guide instructionsService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		guide: guide,
		log:   logger.With("handler", "admin"),
	}
}

type pinRequest struct {
	ChannelID string `json:"channelId"`
}

type pinResponse struct {
	OK        bool   `json:"ok"`
	Message   string `json:"message"`
	MessageTS string `json:"messageTs"`
}

// PinInstructions handles POST /admin/pin-instructions.
func (h *AdminHandler) PinInstructions(w http.ResponseWriter, r *http.Request) {
	var req pinRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ts, err := h.guide.PinInstructions(r.Context(), req.ChannelID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, pinResponse{
		OK:        true,
		Message:   "Instructions posted and pinned",
		MessageTS: ts,
	})
}
