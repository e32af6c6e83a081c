package handlers

import (
	"net/http"

	"github.com/hugh/cardlink/internal/api/dto"
	"github.com/hugh/cardlink/internal/cardnet"
)

type DesignHandler struct {
	service *cardnet.Service
}

func NewDesignHandler(service *cardnet.Service) *DesignHandler {
	return &DesignHandler{service: service}
}

// List handles GET /api/v1/designs
func (h *DesignHandler) List(w http.ResponseWriter, r *http.Request) {
	designs := h.service.ListDesigns(r.Context())
	response := make([]dto.DesignResponse, len(designs))
	for i := range designs {
		response[i] = dto.DesignFromModel(&designs[i])
	}

	writeJSON(w, http.StatusOK, dto.NewList(response))
}

// AssignCard handles POST /api/v1/designs/{id}/cards
func (h *DesignHandler) AssignCard(w http.ResponseWriter, r *http.Request) {
	designID, ok := pathID(w, r, "id", "design")
	if !ok {
		return
	}

	var req dto.AssignCardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	card, err := h.service.AssignCard(r.Context(), designID, req.Input())
	if err != nil {
		writeServiceError(w, err, "Failed to assign card")
		return
	}

	writeJSON(w, http.StatusCreated, dto.CardFromModel(card, true))
}
