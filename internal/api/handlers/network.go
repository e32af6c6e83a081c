package handlers

import (
	"net/http"

	"github.com/hugh/cardlink/internal/api/dto"
	"github.com/hugh/cardlink/internal/api/middleware"
	"github.com/hugh/cardlink/internal/api/validation"
	"github.com/hugh/cardlink/internal/cardnet"
)

// NetworkHandler serves the directory and the connection graph for the
// viewer card of the session.
type NetworkHandler struct {
	service *cardnet.Service
}

func NewNetworkHandler(service *cardnet.Service) *NetworkHandler {
	return &NetworkHandler{service: service}
}

// Directory handles GET /api/v1/directory?q=
func (h *NetworkHandler) Directory(w http.ResponseWriter, r *http.Request) {
	query := validation.SearchQuery(r.URL.Query().Get("q"))
	cards := h.service.Search(r.Context(), query)

	writeJSON(w, http.StatusOK, dto.NewList(dto.CardsFromModels(cards, false)))
}

// Connections handles GET /api/v1/connections
func (h *NetworkHandler) Connections(w http.ResponseWriter, r *http.Request) {
	cards := h.service.ConnectedCards(r.Context(), middleware.GetCardID(r.Context()))
	writeJSON(w, http.StatusOK, dto.NewList(dto.CardsFromModels(cards, true)))
}

// Incoming handles GET /api/v1/connections/requests
func (h *NetworkHandler) Incoming(w http.ResponseWriter, r *http.Request) {
	reqs := h.service.IncomingRequests(r.Context(), middleware.GetCardID(r.Context()))
	writeJSON(w, http.StatusOK, dto.NewList(dto.ConnectionRequestsFromModels(reqs)))
}

// Outgoing handles GET /api/v1/connections/requests/outgoing
func (h *NetworkHandler) Outgoing(w http.ResponseWriter, r *http.Request) {
	reqs := h.service.OutgoingRequests(r.Context(), middleware.GetCardID(r.Context()))
	writeJSON(w, http.StatusOK, dto.NewList(dto.ConnectionRequestsFromModels(reqs)))
}

// SendRequest handles POST /api/v1/connections/requests
func (h *NetworkHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	var req dto.SendRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errors})
		return
	}

	created, err := h.service.SendRequest(r.Context(), middleware.GetCardID(r.Context()), req.ToCardID)
	if err != nil {
		writeServiceError(w, err, "Failed to send request")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ConnectionRequestFromModel(created))
}

// Accept handles POST /api/v1/connections/requests/{id}/accept
func (h *NetworkHandler) Accept(w http.ResponseWriter, r *http.Request) {
	requestID, ok := pathID(w, r, "id", "request")
	if !ok {
		return
	}

	conn, err := h.service.AcceptRequest(r.Context(), middleware.GetCardID(r.Context()), requestID)
	if err != nil {
		writeServiceError(w, err, "Failed to accept request")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ConnectionFromModel(conn))
}

// Reject handles POST /api/v1/connections/requests/{id}/reject
func (h *NetworkHandler) Reject(w http.ResponseWriter, r *http.Request) {
	requestID, ok := pathID(w, r, "id", "request")
	if !ok {
		return
	}

	if err := h.service.RejectRequest(r.Context(), middleware.GetCardID(r.Context()), requestID); err != nil {
		writeServiceError(w, err, "Failed to reject request")
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Request rejected"})
}
