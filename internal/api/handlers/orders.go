package handlers

import (
	"net/http"

	"github.com/hugh/cardlink/internal/api/dto"
	"github.com/hugh/cardlink/internal/cardnet"
	"github.com/hugh/cardlink/internal/database/models"
)

type OrderHandler struct {
	service *cardnet.Service
}

func NewOrderHandler(service *cardnet.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /api/v1/orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), req.Input())
	if err != nil {
		writeServiceError(w, err, "Failed to place order")
		return
	}

	writeJSON(w, http.StatusCreated, dto.OrderFromModel(order))
}

// List handles GET /api/v1/orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	status := models.OrderStatus(r.URL.Query().Get("status"))
	switch status {
	case "", models.OrderStatusPending, models.OrderStatusDesigned:
	default:
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Details: map[string]string{"status": "must be one of: pending, designed"},
		})
		return
	}

	orders := h.service.ListOrders(r.Context(), status)
	response := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		response[i] = dto.OrderFromModel(&orders[i])
	}

	writeJSON(w, http.StatusOK, dto.NewList(response))
}

// SubmitDesign handles POST /api/v1/orders/{id}/design
func (h *OrderHandler) SubmitDesign(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id", "order")
	if !ok {
		return
	}

	var req dto.SubmitDesignRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	design, err := h.service.SubmitDesign(r.Context(), orderID, req.Template)
	if err != nil {
		writeServiceError(w, err, "Failed to submit design")
		return
	}

	writeJSON(w, http.StatusCreated, dto.DesignFromModel(design))
}
