package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vintage-atelier/internal/cart"
	"vintage-atelier/internal/catalog"
	"vintage-atelier/internal/domain"
	"vintage-atelier/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
)

// CartView is the cart state a caller needs after any cart operation.
type CartView struct {
	Items      []domain.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice int               `json:"total_price"`
}

// ShopService exposes the storefront's business operations: catalog queries,
// cart mutation and checkout. Cart state is in-memory and authoritative;
// order history is written through to the session-state mirror best-effort.
type ShopService interface {
	ListProducts(criteria catalog.Criteria, key catalog.SortKey) []domain.Product
	SuggestProducts(term string) []domain.Product
	GetProduct(productID int) (domain.Product, error)
	GetCart(sessionID string) CartView
	AddToCart(sessionID string, productID int) (CartView, error)
	UpdateCartQuantity(sessionID string, productID, quantity int) CartView
	RemoveFromCart(sessionID string, productID int) CartView
	ClearCart(sessionID string)
	SubmitOrder(ctx context.Context, sessionID string, form domain.OrderForm) (*domain.Order, error)
	OrderHistory(ctx context.Context, sessionID string) ([]domain.Order, error)
}

type shopService struct {
	catalog *catalog.Catalog
	carts   *cart.Store
	states  repository.StateRepository
	logger  *zap.Logger
}

// NewShopService creates a new instance of ShopService.
func NewShopService(
	cat *catalog.Catalog,
	carts *cart.Store,
	states repository.StateRepository,
	logger *zap.Logger,
) ShopService {
	return &shopService{
		catalog: cat,
		carts:   carts,
		states:  states,
		logger:  logger,
	}
}

// ListProducts runs the catalog query engine over the full catalog.
func (s *shopService) ListProducts(criteria catalog.Criteria, key catalog.SortKey) []domain.Product {
	return s.catalog.Query(criteria, key)
}

// SuggestProducts returns the capped autocomplete projection for a term.
func (s *shopService) SuggestProducts(term string) []domain.Product {
	return s.catalog.Suggest(term)
}

// GetProduct looks up a single catalog product.
func (s *shopService) GetProduct(productID int) (domain.Product, error) {
	return s.catalog.FindByID(productID)
}

// GetCart returns the session's current cart contents and totals.
func (s *shopService) GetCart(sessionID string) CartView {
	return viewOf(s.carts.Snapshot(sessionID))
}

// AddToCart adds one unit of the product to the session's cart. Repeated
// adds increment the existing entry.
func (s *shopService) AddToCart(sessionID string, productID int) (CartView, error) {
	product, err := s.catalog.FindByID(productID)
	if err != nil {
		return CartView{}, err
	}

	s.carts.Update(sessionID, func(c *cart.Cart) {
		c.Add(product)
	})
	return s.GetCart(sessionID), nil
}

// UpdateCartQuantity sets an entry's quantity. Zero or negative quantities
// remove the entry; unknown product ids are a no-op.
func (s *shopService) UpdateCartQuantity(sessionID string, productID, quantity int) CartView {
	s.carts.Update(sessionID, func(c *cart.Cart) {
		c.UpdateQuantity(productID, quantity)
	})
	return s.GetCart(sessionID)
}

// RemoveFromCart deletes an entry. Removing an absent entry is a no-op.
func (s *shopService) RemoveFromCart(sessionID string, productID int) CartView {
	s.carts.Update(sessionID, func(c *cart.Cart) {
		c.Remove(productID)
	})
	return s.GetCart(sessionID)
}

// ClearCart empties the session's cart.
func (s *shopService) ClearCart(sessionID string) {
	s.carts.Update(sessionID, func(c *cart.Cart) {
		c.Clear()
	})
}

// SubmitOrder snapshots the cart into a pending order, appends it to the
// session's order history, then unconditionally clears the cart. There is no
// inventory decrement and no payment step; the mirror write is best-effort.
func (s *shopService) SubmitOrder(ctx context.Context, sessionID string, form domain.OrderForm) (*domain.Order, error) {
	snapshot := s.carts.Snapshot(sessionID)
	if len(snapshot.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := domain.Order{
		ID:       uuid.New(),
		Date:     time.Now().UTC(),
		Items:    snapshot.Items,
		Total:    snapshot.TotalPrice,
		Status:   domain.OrderStatusPending,
		Customer: form,
	}

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state.Orders = append(state.Orders, order)

	if err := s.states.Save(ctx, sessionID, state); err != nil {
		// The mirror is a convenience cache; losing a write must not fail
		// the checkout.
		s.logger.Warn("Failed to mirror order history",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}

	s.carts.Update(sessionID, func(c *cart.Cart) {
		c.Clear()
	})

	s.logger.Info("Order submitted",
		zap.String("order_id", order.ID.String()),
		zap.Int("total", order.Total),
		zap.Int("items", len(order.Items)),
	)
	return &order, nil
}

// OrderHistory returns the session's submitted orders, oldest first.
func (s *shopService) OrderHistory(ctx context.Context, sessionID string) ([]domain.Order, error) {
	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return state.Orders, nil
}

func (s *shopService) loadState(ctx context.Context, sessionID string) (*repository.SessionState, error) {
	state, err := s.states.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrStateNotFound) {
			return &repository.SessionState{}, nil
		}
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}
	return state, nil
}

func viewOf(snapshot cart.Snapshot) CartView {
	return CartView{
		Items:      snapshot.Items,
		TotalItems: snapshot.TotalItems,
		TotalPrice: snapshot.TotalPrice,
	}
}
