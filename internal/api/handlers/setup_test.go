package handlers_test

import (
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/cardlink/internal/api/handlers"
	"github.com/hugh/cardlink/internal/api/middleware"
	"github.com/hugh/cardlink/internal/inbox"
	"github.com/hugh/cardlink/internal/testutil"
)

// setupTestRouter mounts every card network handler behind Auth. Role checks
// live in the api router and are covered there.
func setupTestRouter(t *testing.T, ib *inbox.Inbox) (*chi.Mux, *testutil.TestSetup) {
	t.Helper()
	tc := testutil.NewTestContext(t)

	orders := handlers.NewOrderHandler(tc.Service)
	designs := handlers.NewDesignHandler(tc.Service)
	cards := handlers.NewCardHandler(tc.Service)
	network := handlers.NewNetworkHandler(tc.Service)
	notifications := handlers.NewNotificationHandler(ib)
	sessions := handlers.NewSessionHandler(tc.Service, tc.JWTService)

	r := chi.NewRouter()
	r.Post("/api/v1/sessions", sessions.Create)
	r.Get("/api/v1/share/{code}", cards.Share)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tc.JWTService))

		r.Post("/api/v1/orders", orders.Create)
		r.Get("/api/v1/orders", orders.List)
		r.Post("/api/v1/orders/{id}/design", orders.SubmitDesign)
		r.Get("/api/v1/designs", designs.List)
		r.Post("/api/v1/designs/{id}/cards", designs.AssignCard)
		r.Get("/api/v1/cards", cards.List)

		r.Get("/api/v1/me", cards.Me)
		r.Post("/api/v1/me/visibility", cards.ToggleVisibility)
		r.Put("/api/v1/me/job", cards.UpdateJob)
		r.Get("/api/v1/me/notifications", notifications.List)

		r.Get("/api/v1/directory", network.Directory)
		r.Get("/api/v1/connections", network.Connections)
		r.Get("/api/v1/connections/requests", network.Incoming)
		r.Post("/api/v1/connections/requests", network.SendRequest)
		r.Get("/api/v1/connections/requests/outgoing", network.Outgoing)
		r.Post("/api/v1/connections/requests/{id}/accept", network.Accept)
		r.Post("/api/v1/connections/requests/{id}/reject", network.Reject)
	})

	return r, tc
}

func idStr(id int64) string {
	return strconv.FormatInt(id, 10)
}
