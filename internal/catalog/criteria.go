package catalog

import (
	"strings"

	"vintage-atelier/internal/domain"
)

const (
	// Wildcard is the sentinel meaning "do not filter on this field". An
	// empty selection is treated the same way.
	Wildcard = "all"

	// PriceCeiling is the upper bound of the price range editor.
	PriceCeiling = 100000

	// maxSuggestions caps the autocomplete projection.
	maxSuggestions = 6
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortName      SortKey = "name"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
)

// ParseSortKey maps a request parameter to a sort key. Unknown values fall
// back to the default catalog order.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortName, SortPriceAsc, SortPriceDesc:
		return SortKey(s)
	default:
		return SortDefault
	}
}

// Criteria is the combined filter and search configuration. All active
// predicates are AND-composed; only the search term is case-insensitive,
// categorical fields match exactly.
type Criteria struct {
	PriceMin int
	PriceMax int
	Style    string
	Material string
	Size     string
	Category string
	Search   string
}

// DefaultCriteria returns the unrestricted configuration: the full price
// range, wildcards on every categorical field, and no search term. Resetting
// the filters restores exactly this value.
func DefaultCriteria() Criteria {
	return Criteria{
		PriceMin: 0,
		PriceMax: PriceCeiling,
		Style:    Wildcard,
		Material: Wildcard,
		Size:     Wildcard,
		Category: Wildcard,
	}
}

// Clamp normalizes the price bounds the way the range editor does on blur:
// PriceMin into [0, PriceMax] and PriceMax into [PriceMin, PriceCeiling].
// The query engine itself does not clamp; this is a boundary behavior for
// callers that accept raw numeric input.
func (c Criteria) Clamp() Criteria {
	if c.PriceMax > PriceCeiling {
		c.PriceMax = PriceCeiling
	}
	if c.PriceMax < 0 {
		c.PriceMax = 0
	}
	if c.PriceMin < 0 {
		c.PriceMin = 0
	}
	if c.PriceMin > c.PriceMax {
		c.PriceMin = c.PriceMax
	}
	return c
}

// Matches reports whether a product passes every active predicate.
func (c Criteria) Matches(p domain.Product) bool {
	if p.Price < c.PriceMin || p.Price > c.PriceMax {
		return false
	}
	if !isWildcard(c.Style) && p.Style != c.Style {
		return false
	}
	if !isWildcard(c.Material) && p.Material != c.Material {
		return false
	}
	if !isWildcard(c.Size) && p.Size != c.Size {
		return false
	}
	if !isWildcard(c.Category) && p.Category != c.Category {
		return false
	}
	if term := normalizeTerm(c.Search); term != "" && !matchesTerm(p, term) {
		return false
	}
	return true
}

func isWildcard(s string) bool {
	return s == "" || s == Wildcard
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matchesTerm is the shared substring predicate: a lower-cased term matches
// when it is contained in any of name, description, category, style or
// material. Both the main query and the autocomplete projection use it.
func matchesTerm(p domain.Product, term string) bool {
	for _, field := range []string{p.Name, p.Description, p.Category, p.Style, p.Material} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
