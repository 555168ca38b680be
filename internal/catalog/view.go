// Package catalog derives the storefront's product listing: a pure
// filter+sort view over the product list, fed by a time-boxed snapshot of
// the commerce API's catalog.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
)

// Sort keys accepted by View. An unknown key keeps the input order.
const (
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
)

// View computes the filtered, sorted display list. Category filter first
// (empty selection passes everything; otherwise membership by category
// name), then a case-insensitive prefix match of the product name against
// the trimmed query, then the sort. The input slice is never mutated and
// identical inputs always yield identical output order.
func View(products []domain.Product, selectedCategories []string, query, sortKey string) []domain.Product {
	catSet := make(map[string]struct{}, len(selectedCategories))
	for _, c := range selectedCategories {
		catSet[c] = struct{}{}
	}

	prefix := strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if len(catSet) > 0 {
			if _, ok := catSet[p.CategoryName]; !ok {
				continue
			}
		}
		if prefix != "" && !strings.HasPrefix(strings.ToLower(p.Name), prefix) {
			continue
		}
		out = append(out, *p)
	}

	sortProducts(out, sortKey)
	return out
}

func sortProducts(products []domain.Product, sortKey string) {
	switch sortKey {
	case SortNewest:
		// Missing timestamps are the zero time and sort last.
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].BasePrice < products[j].BasePrice
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].BasePrice > products[j].BasePrice
		})
	case SortName:
		// Locale-aware, case-insensitive collation. A fixed root collator
		// keeps the order deterministic across machines instead of following
		// the process locale. Collators are not safe for concurrent use, so
		// one is built per sort.
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	default:
		// Keep input order.
	}
}
