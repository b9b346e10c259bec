package handler

import (
	"log/slog"
	"net/http"

	"github.com/saqify/backend/internal/model"
	"github.com/saqify/backend/internal/service"
)

// OrderHandler handles order submission and listing.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates an OrderHandler with the given service.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Submit handles POST /api/submit-order.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeForm(w, r)
	if !ok {
		return
	}

	rec, err := h.orderService.Submit(r.Context(), input)
	if err != nil {
		writeSubmitError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Success: true,
		Message: "Order submitted successfully!",
		OrderID: rec.ID,
	})
}

// orderListResponse is the JSON response for GET /api/orders.
type orderListResponse struct {
	Orders []*model.OrderRecord `json:"orders"`
}

// List handles GET /api/orders. Newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.List(r.Context())
	if err != nil {
		slog.Error("failed to list orders",
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	// Return [] not null for empty lists
	if orders == nil {
		orders = []*model.OrderRecord{}
	}
	writeJSON(w, http.StatusOK, orderListResponse{Orders: orders})
}
