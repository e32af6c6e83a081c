package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/hugh/cardlink/internal/cardnet"
	"github.com/hugh/cardlink/internal/database/models"
	"github.com/hugh/cardlink/pkg/queue"
)

const notifyMaxRetry = 5

// Enqueuer is the part of *asynq.Client the notifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Notifier hands job updates to the worker through the task queue.
type Notifier struct {
	client Enqueuer
	logger *slog.Logger
}

var _ cardnet.Notifier = (*Notifier)(nil)

func NewNotifier(client Enqueuer, logger *slog.Logger) *Notifier {
	return &Notifier{client: client, logger: logger}
}

func (n *Notifier) JobUpdated(ctx context.Context, card models.Card, recipientIDs []int64) error {
	payload := JobUpdatePayload{
		NotificationID:   uuid.New(),
		CardID:           card.ID,
		Name:             card.Name,
		CompanyName:      card.CompanyName,
		Title:            card.Title,
		ShareCode:        card.ShareCode,
		RecipientCardIDs: recipientIDs,
		UpdatedAt:        card.UpdatedAt,
	}

	task, err := NewJobUpdateNotifyTask(payload)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	info, err := n.client.EnqueueContext(ctx, task,
		asynq.TaskID(payload.NotificationID.String()),
		asynq.Queue(queue.Notifications),
		asynq.MaxRetry(notifyMaxRetry),
	)
	if err != nil {
		return fmt.Errorf("enqueue job update: %w", err)
	}

	n.logger.Info("job update queued",
		"task_id", info.ID,
		"card_id", card.ID,
		"recipients", len(recipientIDs),
	)
	return nil
}
