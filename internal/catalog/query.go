package catalog

import (
	"sort"

	"vintage-atelier/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Query computes the visible product list for the given criteria and sort
// key. It is a pure function of the catalog and its inputs: the catalog is
// never mutated and every call recomputes the result in full. Under
// SortDefault the surviving products keep their catalog order; the other
// sorts are stable with respect to ties.
func (c *Catalog) Query(criteria Criteria, key SortKey) []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if criteria.Matches(p) {
			out = append(out, p)
		}
	}
	sortProducts(out, key)
	return out
}

// Suggest is the autocomplete projection: the first products matching the
// term with the same predicate Query uses, capped at six. An empty or
// whitespace-only term yields no suggestions.
func (c *Catalog) Suggest(term string) []domain.Product {
	normalized := normalizeTerm(term)
	if normalized == "" {
		return nil
	}

	var out []domain.Product
	for _, p := range c.products {
		if matchesTerm(p, normalized) {
			out = append(out, p)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func sortProducts(products []domain.Product, key SortKey) {
	switch key {
	case SortName:
		// A fresh collator per call keeps Query safe for concurrent callers.
		col := collate.New(language.Russian)
		sort.SliceStable(products, func(i, j int) bool {
			return col.CompareString(products[i].Name, products[j].Name) < 0
		})
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	}
}
