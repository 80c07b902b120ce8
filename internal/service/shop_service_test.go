package service

import (
	"context"
	"errors"
	"testing"

	"vintage-atelier/internal/cart"
	"vintage-atelier/internal/catalog"
	"vintage-atelier/internal/domain"
	"vintage-atelier/internal/repository"

	"go.uber.org/zap"
)

// Mock state repository for testing
type mockStateRepository struct {
	states  map[string]*repository.SessionState
	saveErr error
	loadErr error
	deleted []string
}

func newMockStateRepository() *mockStateRepository {
	return &mockStateRepository{
		states: make(map[string]*repository.SessionState),
	}
}

func (m *mockStateRepository) Load(ctx context.Context, sessionID string) (*repository.SessionState, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	state, exists := m.states[sessionID]
	if !exists {
		return nil, repository.ErrStateNotFound
	}
	return state, nil
}

func (m *mockStateRepository) Save(ctx context.Context, sessionID string, state *repository.SessionState) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.states[sessionID] = state
	return nil
}

func (m *mockStateRepository) Delete(ctx context.Context, sessionID string) error {
	m.deleted = append(m.deleted, sessionID)
	delete(m.states, sessionID)
	return nil
}

func newTestShopService(states repository.StateRepository) ShopService {
	return NewShopService(catalog.Default(), cart.NewStore(), states, zap.NewNop())
}

func TestAddToCartUnknownProduct(t *testing.T) {
	shop := newTestShopService(newMockStateRepository())

	_, err := shop.AddToCart("s1", 999)
	if !errors.Is(err, catalog.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCartFlowThroughService(t *testing.T) {
	shop := newTestShopService(newMockStateRepository())

	view, err := shop.AddToCart("s1", 1)
	if err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}
	if view.TotalItems != 1 || view.TotalPrice != 45000 {
		t.Fatalf("unexpected view after add: %+v", view)
	}

	view, _ = shop.AddToCart("s1", 1)
	if view.TotalItems != 2 {
		t.Fatalf("repeated add did not increment: %+v", view)
	}

	view = shop.UpdateCartQuantity("s1", 1, 5)
	if view.TotalItems != 5 || view.TotalPrice != 5*45000 {
		t.Fatalf("unexpected view after update: %+v", view)
	}

	view = shop.UpdateCartQuantity("s1", 1, 0)
	if len(view.Items) != 0 {
		t.Fatalf("quantity 0 should remove the entry: %+v", view)
	}
}

func TestSubmitOrderClearsCartAndAppendsPendingOrder(t *testing.T) {
	states := newMockStateRepository()
	shop := newTestShopService(states)
	ctx := context.Background()

	shop.AddToCart("s1", 1)
	shop.AddToCart("s1", 2)
	shop.AddToCart("s1", 2)
	expectedTotal := shop.GetCart("s1").TotalPrice

	form := domain.OrderForm{
		Name:    "Анна",
		Email:   "anna@example.com",
		Phone:   "+7 900 000-00-00",
		Address: "Москва",
	}

	order, err := shop.SubmitOrder(ctx, "s1", form)
	if err != nil {
		t.Fatalf("SubmitOrder failed: %v", err)
	}

	if order.Status != domain.OrderStatusPending {
		t.Errorf("order status = %q, want pending", order.Status)
	}
	if order.Total != expectedTotal {
		t.Errorf("order total = %d, want %d", order.Total, expectedTotal)
	}
	if len(order.Items) != 2 {
		t.Errorf("order items = %d, want 2 entries", len(order.Items))
	}

	if view := shop.GetCart("s1"); len(view.Items) != 0 {
		t.Errorf("cart not cleared after submit: %+v", view)
	}

	orders, err := shop.OrderHistory(ctx, "s1")
	if err != nil {
		t.Fatalf("OrderHistory failed: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != order.ID {
		t.Errorf("unexpected order history: %+v", orders)
	}
}

func TestSubmitOrderEmptyCart(t *testing.T) {
	shop := newTestShopService(newMockStateRepository())

	_, err := shop.SubmitOrder(context.Background(), "s1", domain.OrderForm{})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestSubmitOrderSurvivesMirrorFailure(t *testing.T) {
	states := newMockStateRepository()
	states.saveErr = errors.New("disk full")
	shop := newTestShopService(states)

	shop.AddToCart("s1", 1)

	// The mirror is best-effort: a failed write must not fail the checkout
	// and the cart must still be cleared.
	order, err := shop.SubmitOrder(context.Background(), "s1", domain.OrderForm{Name: "x"})
	if err != nil {
		t.Fatalf("SubmitOrder should succeed despite mirror failure, got %v", err)
	}
	if order.Status != domain.OrderStatusPending {
		t.Errorf("order status = %q", order.Status)
	}
	if view := shop.GetCart("s1"); len(view.Items) != 0 {
		t.Errorf("cart not cleared: %+v", view)
	}
}

func TestSubmitOrderAppendsToExistingHistory(t *testing.T) {
	states := newMockStateRepository()
	shop := newTestShopService(states)
	ctx := context.Background()

	shop.AddToCart("s1", 1)
	if _, err := shop.SubmitOrder(ctx, "s1", domain.OrderForm{Name: "a"}); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	shop.AddToCart("s1", 3)
	if _, err := shop.SubmitOrder(ctx, "s1", domain.OrderForm{Name: "b"}); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	orders, err := shop.OrderHistory(ctx, "s1")
	if err != nil {
		t.Fatalf("OrderHistory failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].Total != 45000 || orders[1].Total != 75000 {
		t.Errorf("unexpected totals: %d, %d", orders[0].Total, orders[1].Total)
	}
}

func TestOrderHistoryEmptySession(t *testing.T) {
	shop := newTestShopService(newMockStateRepository())

	orders, err := shop.OrderHistory(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("OrderHistory failed: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected no orders, got %+v", orders)
	}
}

func TestListProductsDelegatesToEngine(t *testing.T) {
	shop := newTestShopService(newMockStateRepository())

	criteria := catalog.DefaultCriteria()
	criteria.Style = "Английский"

	products := shop.ListProducts(criteria, catalog.SortDefault)
	if len(products) != 1 || products[0].ID != 1 {
		t.Errorf("unexpected products: %+v", products)
	}

	suggestions := shop.SuggestProducts("кресло")
	if len(suggestions) != 2 {
		t.Errorf("expected 2 suggestions, got %d", len(suggestions))
	}
}
