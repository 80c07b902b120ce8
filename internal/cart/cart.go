package cart

import "vintage-atelier/internal/domain"

// Cart maintains the (product, quantity) entries for one shopping session in
// insertion order. There is at most one entry per product id and every stored
// entry has quantity >= 1; operations that would leave a smaller quantity
// remove the entry instead. Cart itself is not safe for concurrent use, the
// Store serializes access per session.
type Cart struct {
	items []domain.CartItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add inserts the product with quantity 1, or increments the existing entry.
// There is no quantity ceiling.
func (c *Cart) Add(p domain.Product) {
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, domain.CartItem{Product: p, Quantity: 1})
}

// Remove deletes the entry for the product id. Removing an absent id is a
// no-op, not an error.
func (c *Cart) Remove(productID int) {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the entry's quantity to exactly the given value. A
// value of zero or less removes the entry. Updating an absent id is a no-op:
// the storefront only issues updates against entries it is displaying.
func (c *Cart) UpdateQuantity(productID, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the entries in insertion order.
func (c *Cart) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems sums the quantities across all entries, not the number of
// distinct entries.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums price x quantity over all entries using the current unit
// price, never the pre-discount original price.
func (c *Cart) TotalPrice() int {
	total := 0
	for _, item := range c.items {
		total += item.Product.Price * item.Quantity
	}
	return total
}
