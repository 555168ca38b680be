package upstream

import (
	"time"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
)

// Wire payloads mirror the commerce API's JSON exactly. Normalization to
// domain types happens here, at the boundary, and nowhere else: downstream
// code never sees alternate response shapes.

type categoryPayload struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func (c *categoryPayload) toDomain() domain.Category {
	return domain.Category{ID: c.ID, Name: c.Name, Active: c.Active}
}

type categoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type productPayload struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	BasePrice   int64        `json:"basePrice"`
	Weight      int          `json:"weight"`
	Status      string       `json:"status"`
	Active      bool         `json:"active"`
	CategoryID  string       `json:"categoryId"`
	Category    *categoryRef `json:"category"`
	Images      string       `json:"images"`
	CreatedAt   time.Time    `json:"createdAt"`
}

func (p *productPayload) toDomain() domain.Product {
	out := domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		WeightGrams: p.Weight,
		Status:      p.Status,
		Active:      p.Active,
		CategoryID:  p.CategoryID,
		ImageURLs:   domain.SplitImageList(p.Images),
		CreatedAt:   p.CreatedAt,
	}
	if p.Category != nil {
		if out.CategoryID == "" {
			out.CategoryID = p.Category.ID
		}
		out.CategoryName = p.Category.Name
	}
	return out
}

type variantPayload struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Stock     int    `json:"stock"`
	Price     *int64 `json:"price"`
	Active    bool   `json:"active"`
}

func (v *variantPayload) toDomain() domain.Variant {
	return domain.Variant{
		ID:            v.ID,
		ProductID:     v.ProductID,
		Size:          v.Size,
		Color:         v.Color,
		Stock:         v.Stock,
		PriceOverride: v.Price,
		Active:        v.Active,
	}
}

type orderPayload struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	TotalAmount int64     `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (o *orderPayload) toDomain() domain.Order {
	return domain.Order{
		ID:          o.ID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
	}
}

// paymentPayload carries the gateway's field names verbatim; jumlah is the
// payment amount.
type paymentPayload struct {
	ID      string `json:"id"`
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Amount  int64  `json:"jumlah"`
}

func (p *paymentPayload) toDomain() domain.Payment {
	return domain.Payment{
		ID:      p.ID,
		OrderID: p.OrderID,
		Status:  p.Status,
		Amount:  p.Amount,
	}
}

// productListEnvelope is the paged product listing response.
type productListEnvelope struct {
	Data []productPayload `json:"data"`
	Meta struct {
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	} `json:"meta"`
}

// adminOrdersEnvelope tolerates the API's two spellings of the order list
// key. This is the one place that ambiguity is resolved.
type adminOrdersEnvelope struct {
	Data   []orderPayload `json:"data"`
	Orders []orderPayload `json:"orders"`
}

func (e *adminOrdersEnvelope) list() []orderPayload {
	if len(e.Data) > 0 {
		return e.Data
	}
	return e.Orders
}

type paymentsEnvelope struct {
	Payments []paymentPayload `json:"payments"`
}

type uploadEnvelope struct {
	URL string `json:"url"`
}

// apiError is the error body shape returned by the commerce API.
type apiError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// ProductQuery holds the supported product listing parameters, passed
// through verbatim to the API.
type ProductQuery struct {
	Page       int
	Limit      int
	Search     string
	CategoryID string
	Status     string
	Active     *bool
	Sort       string
}

// ProductPage is one page of the product listing.
type ProductPage struct {
	Products   []domain.Product
	Total      int
	TotalPages int
}

// CategoryInput holds the fields for creating or updating a category.
type CategoryInput struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// ProductInput holds the fields for creating or updating a product.
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	BasePrice   int64    `json:"basePrice"`
	Weight      int      `json:"weight"`
	Status      string   `json:"status"`
	Active      bool     `json:"active"`
	CategoryID  string   `json:"categoryId"`
	ImageURLs   []string `json:"-"`
}

// VariantInput holds the fields for creating or updating a variant.
type VariantInput struct {
	Size   string `json:"size"`
	Color  string `json:"color"`
	Stock  int    `json:"stock"`
	Price  *int64 `json:"price,omitempty"`
	Active bool   `json:"active"`
}
