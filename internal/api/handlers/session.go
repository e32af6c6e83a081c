package handlers

import (
	"net/http"
	"strconv"

	"github.com/hugh/cardlink/internal/api/dto"
	"github.com/hugh/cardlink/internal/auth"
	"github.com/hugh/cardlink/internal/cardnet"
)

type SessionHandler struct {
	service *cardnet.Service
	tokens  auth.TokenService
}

func NewSessionHandler(service *cardnet.Service, tokens auth.TokenService) *SessionHandler {
	return &SessionHandler{service: service, tokens: tokens}
}

// Create handles POST /api/v1/sessions. Sessions only pick the part the
// caller plays; an employee session acts as an existing card.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.SessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errors})
		return
	}

	role := auth.Role(req.Role)
	if role == auth.RoleEmployee {
		if _, err := h.service.GetCard(r.Context(), req.CardID); err != nil {
			writeServiceError(w, err, "Failed to create session")
			return
		}
	}

	token, err := h.tokens.GenerateToken(role, req.CardID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create session"})
		return
	}

	resp := dto.SessionResponse{Token: token, Role: req.Role}
	if req.CardID != 0 {
		resp.CardID = strconv.FormatInt(req.CardID, 10)
	}
	writeJSON(w, http.StatusCreated, resp)
}
