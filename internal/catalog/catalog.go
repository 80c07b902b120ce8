package catalog

import (
	"errors"

	"vintage-atelier/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// Catalog is the fixed in-memory product list the storefront displays.
// Products are immutable after construction, so queries hand out copies of
// the stored values and never mutate them.
type Catalog struct {
	products []domain.Product
	byID     map[int]domain.Product
}

// New builds a catalog from a fixed product list. The slice order becomes the
// default display order.
func New(products []domain.Product) *Catalog {
	c := &Catalog{
		products: make([]domain.Product, len(products)),
		byID:     make(map[int]domain.Product, len(products)),
	}
	copy(c.products, products)
	for _, p := range c.products {
		c.byID[p.ID] = p
	}
	return c
}

// Default returns a catalog seeded with the compiled-in product list.
func Default() *Catalog {
	return New(seedProducts)
}

// Products returns the full catalog in default order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// FindByID looks up a single product.
func (c *Catalog) FindByID(id int) (domain.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}

// Len reports the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}
