package domain

// Product is one item of the fixed storefront catalog. Products are seeded at
// startup and never created or modified at runtime.
type Product struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Price         int    `json:"price"`
	OriginalPrice int    `json:"original_price,omitempty"`
	Category      string `json:"category"`
	Style         string `json:"style"`
	Material      string `json:"material"`
	Size          string `json:"size"`
	Image         string `json:"image"`
	Description   string `json:"description"`
}

// Discounted reports whether the product carries a markdown. OriginalPrice is
// zero when the product was never discounted.
func (p Product) Discounted() bool {
	return p.OriginalPrice > p.Price
}

// CartItem is one (product, quantity) entry of a shopping cart. Quantity is
// always at least 1; an entry that would drop to zero is removed instead.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
