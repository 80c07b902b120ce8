package cart

import (
	"testing"

	"vintage-atelier/internal/domain"
)

var (
	chair = domain.Product{ID: 1, Name: "Винтажное кресло Windsor", Price: 45000, OriginalPrice: 55000}
	table = domain.Product{ID: 2, Name: "Обеденный стол Барокко", Price: 95000}
)

func TestRepeatedAddIncrementsSingleEntry(t *testing.T) {
	c := New()

	c.Add(chair)
	c.Add(chair)
	c.Add(chair)

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", items[0].Quantity)
	}
	if got := c.TotalItems(); got != 3 {
		t.Errorf("TotalItems() = %d, want 3", got)
	}
	if got := c.TotalPrice(); got != 3*chair.Price {
		t.Errorf("TotalPrice() = %d, want %d", got, 3*chair.Price)
	}
}

func TestTotalPriceUsesCurrentPriceNotOriginal(t *testing.T) {
	c := New()
	c.Add(chair)

	if got := c.TotalPrice(); got != 45000 {
		t.Errorf("TotalPrice() = %d, want 45000 (discounted price, not original)", got)
	}
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	c := New()
	c.Add(chair)
	c.Add(table)
	c.Add(chair)

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(items))
	}
	if items[0].Product.ID != 1 || items[1].Product.ID != 2 {
		t.Errorf("unexpected order: %+v", items)
	}
}

func TestUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	c := New()
	c.Add(chair)
	c.Add(chair)

	c.UpdateQuantity(chair.ID, 7)

	if got := c.TotalItems(); got != 7 {
		t.Errorf("TotalItems() = %d, want 7 (absolute set, not delta)", got)
	}
}

func TestUpdateQuantityFloorRemovesEntry(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		c := New()
		c.Add(chair)

		c.UpdateQuantity(chair.ID, quantity)

		if len(c.Items()) != 0 {
			t.Errorf("UpdateQuantity(%d) left an entry behind", quantity)
		}
	}
}

func TestUpdateQuantityUnknownIDIsNoop(t *testing.T) {
	c := New()
	c.Add(chair)

	c.UpdateQuantity(999, 5)

	items := c.Items()
	if len(items) != 1 || items[0].Product.ID != chair.ID || items[0].Quantity != 1 {
		t.Errorf("cart changed by update on unknown id: %+v", items)
	}
}

func TestRemoveUnknownIDIsNoop(t *testing.T) {
	c := New()
	c.Add(chair)

	c.Remove(999)

	if got := c.TotalItems(); got != 1 {
		t.Errorf("TotalItems() = %d, want 1", got)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	c := New()
	c.Add(chair)
	c.Add(table)

	c.Clear()

	if len(c.Items()) != 0 || c.TotalItems() != 0 || c.TotalPrice() != 0 {
		t.Error("cart not empty after Clear")
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New()
	c.Add(chair)

	items := c.Items()
	items[0].Quantity = 100

	if got := c.TotalItems(); got != 1 {
		t.Errorf("mutating the Items copy changed the cart: TotalItems() = %d", got)
	}
}

func TestStoreKeepsSessionsSeparate(t *testing.T) {
	s := NewStore()

	s.Update("session-a", func(c *Cart) { c.Add(chair) })
	s.Update("session-b", func(c *Cart) { c.Add(table); c.Add(table) })

	a := s.Snapshot("session-a")
	b := s.Snapshot("session-b")

	if a.TotalItems != 1 || a.TotalPrice != chair.Price {
		t.Errorf("session-a snapshot wrong: %+v", a)
	}
	if b.TotalItems != 2 || b.TotalPrice != 2*table.Price {
		t.Errorf("session-b snapshot wrong: %+v", b)
	}
}

func TestStoreSnapshotOfUntouchedSessionIsEmpty(t *testing.T) {
	s := NewStore()

	snapshot := s.Snapshot("fresh")
	if len(snapshot.Items) != 0 || snapshot.TotalItems != 0 || snapshot.TotalPrice != 0 {
		t.Errorf("expected empty snapshot, got %+v", snapshot)
	}
}
