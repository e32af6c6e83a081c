package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/cardlink/internal/api/dto"
	"github.com/hugh/cardlink/internal/api/validation"
	"github.com/hugh/cardlink/internal/cardnet"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}

// pathID reads a positive id from the named URL parameter.
func pathID(w http.ResponseWriter, r *http.Request, name, entity string) (int64, bool) {
	id, ok := validation.ParseID(chi.URLParam(r, name))
	if !ok {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + entity + " ID"})
	}
	return id, ok
}

// writeServiceError maps cardnet failures onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var verr *cardnet.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: verr.Fields})
	case errors.Is(err, cardnet.ErrNotFound):
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, cardnet.ErrInvalidState):
		writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}
