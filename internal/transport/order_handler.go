package transport

import (
	"errors"
	"net/http"

	"vintage-atelier/internal/domain"
	"vintage-atelier/internal/middleware"
	"vintage-atelier/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SubmitOrderRequest is the checkout form. Comment is optional, everything
// else is required before the order can be submitted.
type SubmitOrderRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
	Comment string `json:"comment"`
}

// OrderHistoryResponse lists the session's submitted orders.
type OrderHistoryResponse struct {
	Orders []domain.Order `json:"orders"`
}

// OrderHandler handles HTTP requests for checkout and order history.
type OrderHandler struct {
	shop   service.ShopService
	logger *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(shop service.ShopService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{shop: shop, logger: logger}
}

// RegisterRoutes registers all order routes.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.Submit)
		r.Get("/", h.History)
	})
}

// Submit places an order from the current cart and clears it.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	var req SubmitOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form := domain.OrderForm{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Comment: req.Comment,
	}

	order, err := h.shop.SubmitOrder(r.Context(), sessionID, form)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			middleware.RespondWithError(w, http.StatusBadRequest, "cart is empty")
			return
		}

		h.logger.Error("Order submission failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to submit order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// History returns the session's order history.
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	orders, err := h.shop.OrderHistory(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("Failed to load order history", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load order history")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	middleware.RespondWithJSON(w, http.StatusOK, OrderHistoryResponse{Orders: orders})
}
