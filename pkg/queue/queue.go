package queue

import (
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/cardlink/pkg/config"
)

// Queue names. Job-update fan-out is user visible, so it is weighted above
// everything else.
const (
	Notifications = "notifications"
	Default       = "default"
)

var weights = map[string]int{
	Notifications: 6,
	Default:       3,
}

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(cfg *config.RedisConfig) *asynq.Client {
	return asynq.NewClient(redisOpt(cfg))
}

// NewServer builds the worker-side server. Handlers get ten seconds to
// finish their current push on shutdown.
func NewServer(cfg *config.RedisConfig, concurrency int) *asynq.Server {
	if concurrency <= 0 {
		concurrency = 10
	}

	return asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency:     concurrency,
			Queues:          weights,
			ShutdownTimeout: 10 * time.Second,
		},
	)
}
