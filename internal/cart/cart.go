// Package cart implements the cart and wishlist engine: pure merge
// operations over cart lines plus a service that persists them write-through
// and notifies subscribers of changes.
package cart

import (
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
	apperrors "github.com/cintaaprilianti/medina-stuff-sub001/pkg/errors"
)

// AddLine merges a line into the cart. Identity is (productID, variantID or
// its absence). An existing line's quantity grows by line.Quantity; a new
// line is appended, preserving insertion order. When the candidate quantity
// would exceed maxStock the addition is rejected outright with the available
// ceiling, never clamped, and the input slice is returned unchanged.
func AddLine(lines []domain.CartLine, line domain.CartLine, maxStock int) ([]domain.CartLine, error) {
	key := line.Key()

	for i := range lines {
		if lines[i].Key() != key {
			continue
		}

		candidate := lines[i].Quantity + line.Quantity
		if candidate > maxStock {
			return lines, apperrors.StockExceeded(maxStock)
		}

		next := make([]domain.CartLine, len(lines))
		copy(next, lines)
		next[i].Quantity = candidate
		return next, nil
	}

	if line.Quantity > maxStock {
		return lines, apperrors.StockExceeded(maxStock)
	}

	next := make([]domain.CartLine, len(lines), len(lines)+1)
	copy(next, lines)
	return append(next, line), nil
}

// RemoveLine removes the line with the given identity. Removing an absent
// line is a no-op, not an error.
func RemoveLine(lines []domain.CartLine, productID, variantID string) []domain.CartLine {
	key := domain.LineKey(productID, variantID)

	for i := range lines {
		if lines[i].Key() != key {
			continue
		}
		next := make([]domain.CartLine, 0, len(lines)-1)
		next = append(next, lines[:i]...)
		return append(next, lines[i+1:]...)
	}
	return lines
}

// Toggle flips a product's wishlist membership: symmetric difference with
// the singleton set. It returns the new wishlist and whether the product is
// now a member. Applying it twice restores the original set.
func Toggle(wishlist []string, productID string) ([]string, bool) {
	for i, id := range wishlist {
		if id != productID {
			continue
		}
		next := make([]string, 0, len(wishlist)-1)
		next = append(next, wishlist[:i]...)
		return append(next, wishlist[i+1:]...), false
	}

	next := make([]string, len(wishlist), len(wishlist)+1)
	copy(next, wishlist)
	return append(next, productID), true
}
