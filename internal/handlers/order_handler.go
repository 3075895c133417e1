package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopmesh/shopmesh/internal/models"
	"github.com/shopmesh/shopmesh/internal/repository"
	"github.com/shopmesh/shopmesh/internal/service"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// CreateOrder handles POST /orders
// - 201: order validated, priced, and persisted
// - 400: invalid input
// - 404: referenced user or product not found
// - 503: upstream unavailable or timed out
// - 500: invalid upstream response or storage failure
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			WriteError(w, http.StatusBadRequest, err.Error(), h.log)
		case errors.Is(err, service.ErrUserNotFound):
			WriteError(w, http.StatusNotFound, "User not found", h.log)
		case errors.Is(err, service.ErrProductNotFound):
			WriteError(w, http.StatusNotFound, "Product not found", h.log)
		case errors.Is(err, service.ErrUpstreamUnavailable):
			WriteError(w, http.StatusServiceUnavailable, err.Error(), h.log)
		case errors.Is(err, service.ErrInvalidUpstream):
			WriteError(w, http.StatusInternalServerError, err.Error(), h.log)
		default:
			WriteError(w, http.StatusInternalServerError, "Failed to save order", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, order, h.log)
}

// GetOrder handles GET /orders/{orderId}
// - 200: stored order plus best-effort user/product details
// - 404: order not found (including malformed ids, which cannot match)
// - 500: storage failure
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Order not found", h.log)
		return
	}

	details, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			WriteError(w, http.StatusNotFound, "Order not found", h.log)
			return
		}

		h.log.Error("failed to get order", "order_id", id, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, details, h.log)
}
