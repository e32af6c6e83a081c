package cardnet

import (
	"context"

	"github.com/hugh/cardlink/internal/database/models"
)

// Notifier delivers job updates to a card's connections. Delivery happens
// outside the service; a failing notifier never undoes the update.
type Notifier interface {
	JobUpdated(ctx context.Context, card models.Card, recipientIDs []int64) error
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) JobUpdated(context.Context, models.Card, []int64) error {
	return nil
}
