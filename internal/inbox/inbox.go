// Package inbox keeps per-card notification lists in Redis.
package inbox

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultMaxEntries = 100

// Notification tells a card holder that one of their connections changed jobs.
type Notification struct {
	ID          string    `json:"id"`
	CardID      int64     `json:"card_id"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name"`
	Title       string    `json:"title"`
	ShareCode   string    `json:"share_code"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Inbox struct {
	client     *redis.Client
	maxEntries int64
}

// New returns an Inbox that keeps at most maxEntries notifications per card.
func New(client *redis.Client, maxEntries int64) *Inbox {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &Inbox{client: client, maxEntries: maxEntries}
}

func key(cardID int64) string {
	return "inbox:" + strconv.FormatInt(cardID, 10)
}

// Push prepends n to the inbox of recipientID, dropping the oldest entries
// beyond the cap.
func (i *Inbox) Push(ctx context.Context, recipientID int64, n Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	k := key(recipientID)
	pipe := i.client.TxPipeline()
	pipe.LPush(ctx, k, data)
	pipe.LTrim(ctx, k, 0, i.maxEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push notification for card %d: %w", recipientID, err)
	}
	return nil
}

// List returns the notifications of cardID, newest first.
func (i *Inbox) List(ctx context.Context, cardID int64) ([]Notification, error) {
	raw, err := i.client.LRange(ctx, key(cardID), 0, i.maxEntries-1).Result()
	if err != nil {
		return nil, fmt.Errorf("list notifications for card %d: %w", cardID, err)
	}

	out := make([]Notification, 0, len(raw))
	for _, item := range raw {
		var n Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			return nil, fmt.Errorf("unmarshal notification: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}
