package domain

// CartLine is one entry in the shopping cart. Size, color, price, stock
// ceiling, and image are snapshots captured at add time so later variant
// edits don't retroactively change cart display.
type CartLine struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"` // empty for no-variant products
	Name      string `json:"name"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	MaxStock  int    `json:"max_stock"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Key returns the merge identity of the line: (productID, variantID or its
// absence). The NUL separator keeps a missing variant from ever colliding
// with a real variant ID.
func (l *CartLine) Key() string {
	return LineKey(l.ProductID, l.VariantID)
}

// LineKey builds the merge identity for a (productID, variantID) pair.
func LineKey(productID, variantID string) string {
	return productID + "\x00" + variantID
}

// Subtotal returns the line's quantity-extended price.
func (l *CartLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// CartTotal sums the subtotals of all lines.
func CartTotal(lines []CartLine) int64 {
	var total int64
	for i := range lines {
		total += lines[i].Subtotal()
	}
	return total
}

// CartQuantity sums the quantities of all lines.
func CartQuantity(lines []CartLine) int {
	var n int
	for i := range lines {
		n += lines[i].Quantity
	}
	return n
}
