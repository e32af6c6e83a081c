package tasks

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeJobUpdateNotify = "notify:job_update"
)

// JobUpdatePayload carries a card's new job to the cards connected to it
type JobUpdatePayload struct {
	NotificationID   uuid.UUID `json:"notification_id"`
	CardID           int64     `json:"card_id"`
	Name             string    `json:"name"`
	CompanyName      string    `json:"company_name"`
	Title            string    `json:"title"`
	ShareCode        string    `json:"share_code"`
	RecipientCardIDs []int64   `json:"recipient_card_ids"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewJobUpdateNotifyTask(payload JobUpdatePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeJobUpdateNotify, data), nil
}
