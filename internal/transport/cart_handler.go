package transport

import (
	"errors"
	"net/http"
	"strconv"

	"vintage-atelier/internal/catalog"
	"vintage-atelier/internal/middleware"
	"vintage-atelier/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddToCartRequest adds one unit of a product to the cart.
type AddToCartRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
}

// UpdateQuantityRequest sets an entry's quantity. Zero and negative values
// remove the entry, so no lower bound is enforced here.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartHandler handles HTTP requests for cart operations. All operations are
// keyed by the session resolved by the session middleware, so guests get a
// cart without logging in.
type CartHandler struct {
	shop   service.ShopService
	logger *zap.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(shop service.ShopService, logger *zap.Logger) *CartHandler {
	return &CartHandler{shop: shop, logger: logger}
}

// RegisterRoutes registers all cart routes.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Clear)
		r.Post("/items", h.AddItem)
		r.Put("/items/{id}", h.UpdateItem)
		r.Delete("/items/{id}", h.RemoveItem)
	})
}

// Get returns the cart entries and totals.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.shop.GetCart(sessionID))
}

// AddItem adds one unit of a product; repeated adds increment the entry.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	var req AddToCartRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add to cart validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.shop.AddToCart(sessionID, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Add to cart failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add to cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// UpdateItem sets an entry's quantity to an absolute value.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req UpdateQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Update quantity validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.shop.UpdateCartQuantity(sessionID, productID, req.Quantity))
}

// RemoveItem deletes an entry. Removing an absent entry still returns the
// current cart.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.shop.RemoveFromCart(sessionID, productID))
}

// Clear empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "session not resolved")
		return
	}

	h.shop.ClearCart(sessionID)
	middleware.RespondWithJSON(w, http.StatusOK, h.shop.GetCart(sessionID))
}
