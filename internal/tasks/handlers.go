package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/hugh/cardlink/internal/inbox"
)

type Handler struct {
	logger *slog.Logger
	inbox  *inbox.Inbox
}

func NewHandler(logger *slog.Logger, ib *inbox.Inbox) *Handler {
	return &Handler{
		logger: logger,
		inbox:  ib,
	}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeJobUpdateNotify, h.HandleJobUpdateNotify)
}

// HandleJobUpdateNotify drops one notification into the inbox of every
// recipient. A retry may deliver a notification twice to the recipients that
// were reached before the failure; entries carry the notification id so
// readers can tell.
func (h *Handler) HandleJobUpdateNotify(ctx context.Context, t *asynq.Task) error {
	var payload JobUpdatePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	h.logger.Info("delivering job update",
		"notification_id", payload.NotificationID,
		"card_id", payload.CardID,
		"recipients", len(payload.RecipientCardIDs),
	)

	n := inbox.Notification{
		ID:          payload.NotificationID.String(),
		CardID:      payload.CardID,
		Name:        payload.Name,
		CompanyName: payload.CompanyName,
		Title:       payload.Title,
		ShareCode:   payload.ShareCode,
		UpdatedAt:   payload.UpdatedAt,
	}

	for _, recipient := range payload.RecipientCardIDs {
		if err := h.inbox.Push(ctx, recipient, n); err != nil {
			h.logger.Error("failed to deliver job update",
				"notification_id", payload.NotificationID,
				"recipient", recipient,
				"error", err,
			)
			return err
		}
	}

	h.logger.Info("delivered job update", "notification_id", payload.NotificationID)
	return nil
}
