package handlers

import (
	"net/http"

	"github.com/hugh/cardlink/internal/api/dto"
	"github.com/hugh/cardlink/internal/api/middleware"
	"github.com/hugh/cardlink/internal/inbox"
)

type NotificationHandler struct {
	inbox *inbox.Inbox
}

// NewNotificationHandler accepts a nil inbox when Redis is not configured.
func NewNotificationHandler(ib *inbox.Inbox) *NotificationHandler {
	return &NotificationHandler{inbox: ib}
}

// List handles GET /api/v1/me/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.inbox == nil {
		writeJSON(w, http.StatusServiceUnavailable, dto.ErrorResponse{Error: "Notifications are not available"})
		return
	}

	items, err := h.inbox.List(r.Context(), middleware.GetCardID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to load notifications"})
		return
	}

	writeJSON(w, http.StatusOK, dto.NewList(items))
}
