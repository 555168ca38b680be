package domain

import (
	"strings"
	"time"
)

// Product status constants.
const (
	ProductStatusReady        = "READY"
	ProductStatusPreOrder     = "PRE_ORDER"
	ProductStatusDiscontinued = "DISCONTINUED"
)

// ImageListSeparator is the delimiter the commerce API uses to pack a
// product's image URLs into a single string field.
const ImageListSeparator = "|||"

// Category is a product category. Products carry a weak reference to it:
// the ID plus a denormalized name.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Product represents a catalog product.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	BasePrice    int64     `json:"base_price"`
	WeightGrams  int       `json:"weight_grams"`
	Status       string    `json:"status"`
	Active       bool      `json:"active"`
	CategoryID   string    `json:"category_id,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	ImageURLs    []string  `json:"image_urls"`
	CreatedAt    time.Time `json:"created_at"`
}

// Variant is a concrete purchasable (size, color) combination of a product
// with its own stock and optional price override.
type Variant struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	Size          string `json:"size"`
	Color         string `json:"color"`
	Stock         int    `json:"stock"`
	PriceOverride *int64 `json:"price_override,omitempty"`
	Active        bool   `json:"active"`
}

// UnitPrice returns the effective price of the variant given the product's
// base price.
func (v *Variant) UnitPrice(basePrice int64) int64 {
	if v.PriceOverride != nil {
		return *v.PriceOverride
	}
	return basePrice
}

// ColorImageMap maps a color name to one associated image URL for a product.
// It is best-effort display metadata and never authoritative over stock or
// price.
type ColorImageMap map[string]string

// SplitImageList unpacks the API's delimited image field into an ordered URL
// list. The order is canonical: it indexes both the display carousel and the
// color-to-image mapping.
func SplitImageList(packed string) []string {
	if strings.TrimSpace(packed) == "" {
		return nil
	}
	parts := strings.Split(packed, ImageListSeparator)
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			urls = append(urls, p)
		}
	}
	return urls
}

// JoinImageList packs an ordered URL list into the API's delimited form.
func JoinImageList(urls []string) string {
	return strings.Join(urls, ImageListSeparator)
}
