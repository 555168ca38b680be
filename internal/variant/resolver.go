// Package variant maps partial (size, color) selections onto a product's
// concrete variants and derives the color-grouped image ordering for the
// product carousel.
package variant

import (
	"sort"
	"strings"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
)

// SelectableSizes returns the distinct sizes of active variants, in the
// order they first appear in the variant list.
func SelectableSizes(variants []domain.Variant) []string {
	return distinctAttr(variants, func(v *domain.Variant) string { return v.Size })
}

// SelectableColors returns the distinct colors of active variants, in the
// order they first appear in the variant list.
func SelectableColors(variants []domain.Variant) []string {
	return distinctAttr(variants, func(v *domain.Variant) string { return v.Color })
}

func distinctAttr(variants []domain.Variant, attr func(*domain.Variant) string) []string {
	seen := make(map[string]struct{}, len(variants))
	var out []string
	for i := range variants {
		if !variants[i].Active {
			continue
		}
		val := attr(&variants[i])
		if val == "" {
			continue
		}
		if _, ok := seen[val]; ok {
			continue
		}
		seen[val] = struct{}{}
		out = append(out, val)
	}
	return out
}

// SizeInStock reports whether at least one active variant with the given
// size has stock. Used to disable size controls; a selectable size can
// still resolve to nothing for a particular color.
func SizeInStock(size string, variants []domain.Variant) bool {
	for i := range variants {
		v := &variants[i]
		if v.Active && v.Size == size && v.Stock > 0 {
			return true
		}
	}
	return false
}

// ColorInStock reports whether at least one active variant with the given
// color has stock.
func ColorInStock(color string, variants []domain.Variant) bool {
	for i := range variants {
		v := &variants[i]
		if v.Active && v.Color == color && v.Stock > 0 {
			return true
		}
	}
	return false
}

// Resolve returns the active variant matching both attributes, or nil when
// either attribute is unset or no active variant matches. Stock is NOT
// consulted: a zero-stock combination still resolves, and the add-to-cart
// ceiling check is where it gets rejected. If malformed data holds several
// active variants for the same pair, the first in input order wins; that is
// a defined tie-break, not an error.
func Resolve(size, color string, variants []domain.Variant) *domain.Variant {
	if size == "" || color == "" {
		return nil
	}
	for i := range variants {
		v := &variants[i]
		if v.Active && v.Size == size && v.Color == color {
			return v
		}
	}
	return nil
}

// ImageOrder arranges a product's images so that, for each distinct color in
// the order colors first appear in the variant list, the image associated
// with that color comes first, followed by all remaining images in their
// original order. No URL appears twice.
func ImageOrder(p *domain.Product, colorMap domain.ColorImageMap, variants []domain.Variant) []string {
	if len(p.ImageURLs) == 0 {
		return nil
	}

	placed := make(map[string]struct{}, len(p.ImageURLs))
	out := make([]string, 0, len(p.ImageURLs))

	for _, color := range colorsInOrder(variants) {
		mapped, ok := colorMap[color]
		if !ok || mapped == "" {
			continue
		}
		for _, url := range p.ImageURLs {
			if _, done := placed[url]; done {
				continue
			}
			if urlsMatch(url, mapped) {
				placed[url] = struct{}{}
				out = append(out, url)
				break
			}
		}
	}

	for _, url := range p.ImageURLs {
		if _, done := placed[url]; done {
			continue
		}
		placed[url] = struct{}{}
		out = append(out, url)
	}

	return out
}

// ColorForImage is the inverse lookup: the color whose mapped URL matches
// the given image. Entries are tried in color-name order so the result is
// deterministic; the first match wins. Returns false when nothing matches.
func ColorForImage(url string, colorMap domain.ColorImageMap) (string, bool) {
	colors := make([]string, 0, len(colorMap))
	for c := range colorMap {
		colors = append(colors, c)
	}
	sort.Strings(colors)

	for _, c := range colors {
		if mapped := colorMap[c]; mapped != "" && urlsMatch(url, mapped) {
			return c, true
		}
	}
	return "", false
}

// colorsInOrder returns distinct colors in first-appearance order over the
// whole variant list, inactive included: image grouping is display-only and
// should stay stable when a variant is toggled off.
func colorsInOrder(variants []domain.Variant) []string {
	seen := make(map[string]struct{}, len(variants))
	var out []string
	for i := range variants {
		c := variants[i].Color
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// urlsMatch tolerates trivial URL-normalization differences between the
// color map and the product image list: exact match or substring containment
// in either direction.
func urlsMatch(a, b string) bool {
	if a == b {
		return true
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
