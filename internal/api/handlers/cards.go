package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/cardlink/internal/api/dto"
	"github.com/hugh/cardlink/internal/api/middleware"
	"github.com/hugh/cardlink/internal/cardnet"
)

type CardHandler struct {
	service *cardnet.Service
}

func NewCardHandler(service *cardnet.Service) *CardHandler {
	return &CardHandler{service: service}
}

// List handles GET /api/v1/cards
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	cards := h.service.ListCards(r.Context())
	writeJSON(w, http.StatusOK, dto.NewList(dto.CardsFromModels(cards, true)))
}

// Share handles GET /api/v1/share/{code}. Holding the code is the only
// credential needed.
func (h *CardHandler) Share(w http.ResponseWriter, r *http.Request) {
	card, err := h.service.Lookup(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, cardnet.ErrNotFound) {
			// The error text echoes the code; keep it out of the response.
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Card not found"})
			return
		}
		writeServiceError(w, err, "Failed to look up card")
		return
	}

	writeJSON(w, http.StatusOK, dto.CardFromModel(card, true))
}

// Me handles GET /api/v1/me
func (h *CardHandler) Me(w http.ResponseWriter, r *http.Request) {
	card, err := h.service.GetCard(r.Context(), middleware.GetCardID(r.Context()))
	if err != nil {
		writeServiceError(w, err, "Failed to load card")
		return
	}

	writeJSON(w, http.StatusOK, dto.CardFromModel(card, true))
}

// ToggleVisibility handles POST /api/v1/me/visibility
func (h *CardHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	card, err := h.service.ToggleVisibility(r.Context(), middleware.GetCardID(r.Context()))
	if err != nil {
		writeServiceError(w, err, "Failed to change visibility")
		return
	}

	writeJSON(w, http.StatusOK, dto.CardFromModel(card, true))
}

// UpdateJob handles PUT /api/v1/me/job
func (h *CardHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	update, err := h.service.UpdateJob(r.Context(), middleware.GetCardID(r.Context()), req.CompanyName, req.Title)
	if err != nil {
		writeServiceError(w, err, "Failed to update job")
		return
	}

	writeJSON(w, http.StatusOK, dto.JobUpdateResponse{
		Card:          dto.CardFromModel(&update.Card, true),
		NotifiedCount: update.NotifiedCount,
	})
}
