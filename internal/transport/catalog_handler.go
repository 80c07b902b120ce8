package transport

import (
	"net/http"
	"strconv"

	"vintage-atelier/internal/catalog"
	"vintage-atelier/internal/domain"
	"vintage-atelier/internal/middleware"
	"vintage-atelier/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductListResponse is the catalog query result.
type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// SuggestResponse is the autocomplete projection, capped at six entries.
type SuggestResponse struct {
	Suggestions []domain.Product `json:"suggestions"`
}

// CatalogHandler handles HTTP requests for catalog browsing.
type CatalogHandler struct {
	shop   service.ShopService
	logger *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(shop service.ShopService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{shop: shop, logger: logger}
}

// RegisterRoutes registers all catalog routes.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/suggest", h.Suggest)
		r.Get("/{id}", h.Get)
	})
}

// List runs the filter/sort/search pipeline over the catalog. Absent
// parameters keep their defaults, so a bare request returns the full catalog
// in default order.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria, key := criteriaFromQuery(r)
	products := h.shop.ListProducts(criteria, key)

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// Suggest returns search suggestions for the q parameter.
func (h *CatalogHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	suggestions := h.shop.SuggestProducts(r.URL.Query().Get("q"))
	if suggestions == nil {
		suggestions = []domain.Product{}
	}

	middleware.RespondWithJSON(w, http.StatusOK, SuggestResponse{Suggestions: suggestions})
}

// Get returns one product by id.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.shop.GetProduct(id)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// criteriaFromQuery maps request parameters onto filter criteria. Numeric
// bounds are clamped the way the price range editor clamps on blur;
// unparseable numbers fall back to the defaults.
func criteriaFromQuery(r *http.Request) (catalog.Criteria, catalog.SortKey) {
	q := r.URL.Query()
	criteria := catalog.DefaultCriteria()

	if v := q.Get("style"); v != "" {
		criteria.Style = v
	}
	if v := q.Get("material"); v != "" {
		criteria.Material = v
	}
	if v := q.Get("size"); v != "" {
		criteria.Size = v
	}
	if v := q.Get("category"); v != "" {
		criteria.Category = v
	}
	if v := q.Get("price_min"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			criteria.PriceMin = n
		}
	}
	if v := q.Get("price_max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			criteria.PriceMax = n
		}
	}
	criteria.Search = q.Get("q")

	return criteria.Clamp(), catalog.ParseSortKey(q.Get("sort"))
}
