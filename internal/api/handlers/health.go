package handlers

import (
	"context"
	"net/http"

	"github.com/hugh/cardlink/internal/cardnet"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthHandler reports on the card network and whichever backing services
// are configured. db and redis may be nil.
type HealthHandler struct {
	service *cardnet.Service
	checks  map[string]func(context.Context) error
}

func NewHealthHandler(service *cardnet.Service, db *gorm.DB, rdb *redis.Client) *HealthHandler {
	checks := make(map[string]func(context.Context) error)
	if db != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return &HealthHandler{service: service, checks: checks}
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
	Network  *cardnet.Stats    `json:"network,omitempty"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "healthy", Services: make(map[string]string, len(h.checks))}

	for name, check := range h.checks {
		if err := check(r.Context()); err != nil {
			resp.Services[name] = "unhealthy"
			resp.Status = "unhealthy"
			continue
		}
		resp.Services[name] = "healthy"
	}

	if h.service != nil {
		stats := h.service.Stats(r.Context())
		resp.Network = &stats
	}

	statusCode := http.StatusOK
	if resp.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, resp)
}

// Ready succeeds once the card network has been loaded.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		http.Error(w, "card network not loaded", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
