package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/catalog"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/store"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/variant"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/httputil"
)

// VariantFetcher is the slice of the commerce API the catalog handlers use
// to load a product's variants.
type VariantFetcher interface {
	Variants(ctx context.Context, productID string, includeInactive bool) ([]domain.Variant, error)
}

// CatalogHandler serves the storefront catalog: the filtered and sorted
// product view and the product detail with selectable attributes.
type CatalogHandler struct {
	catalog  *catalog.Service
	variants VariantFetcher
	store    store.SessionStore
	logger   *slog.Logger
}

// NewCatalogHandler creates a catalog HTTP handler.
func NewCatalogHandler(cat *catalog.Service, variants VariantFetcher, st store.SessionStore, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:  cat,
		variants: variants,
		store:    st,
		logger:   logger,
	}
}

// catalogView is the response body for the catalog listing.
type catalogView struct {
	Products   []domain.Product `json:"products"`
	Categories []string         `json:"categories"`
	Total      int              `json:"total"`
}

// AttributeOption is one selectable size or color with its availability.
type AttributeOption struct {
	Value   string `json:"value"`
	InStock bool   `json:"in_stock"`
}

// ImageView is one product image with the color it represents, when known.
type ImageView struct {
	URL   string `json:"url"`
	Color string `json:"color,omitempty"`
}

// productDetail is the response body for a single product page.
type productDetail struct {
	Product  *domain.Product   `json:"product"`
	Variants []domain.Variant  `json:"variants"`
	Sizes    []AttributeOption `json:"sizes"`
	Colors   []AttributeOption `json:"colors"`
	Images   []ImageView       `json:"images"`
	Selected *domain.Variant   `json:"selected,omitempty"`
}

// View handles GET /api/v1/catalog. Filters and sorting are taken from the
// category, q, and sort query parameters. A failed catalog fetch degrades to
// an empty listing with a warning log instead of an error page.
func (h *CatalogHandler) View(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	snap, err := h.catalog.Snapshot(r.Context())
	if err != nil {
		h.logger.WarnContext(r.Context(), "catalog fetch failed, serving empty listing",
			slog.String("error", err.Error()),
		)
		httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: catalogView{
			Products:   []domain.Product{},
			Categories: []string{},
		}})
		return
	}

	products := catalog.View(snap.Products, q["category"], q.Get("q"), q.Get("sort"))

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: catalogView{
		Products:   products,
		Categories: snap.Categories,
		Total:      len(products),
	}})
}

// Product handles GET /api/v1/catalog/products/{productID}. When both the
// size and color query parameters are present the matching variant is
// resolved and returned as selected; no match leaves selected empty.
func (h *CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	product, err := h.catalog.Product(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if product == nil {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"},
		})
		return
	}

	variants, err := h.variants.Variants(r.Context(), productID, false)
	if err != nil {
		h.logger.WarnContext(r.Context(), "variant fetch failed, serving product without variants",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		variants = []domain.Variant{}
	}

	colorMap, err := h.store.ColorImageMap(r.Context(), productID)
	if err != nil {
		h.logger.WarnContext(r.Context(), "color map lookup failed",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		colorMap = domain.ColorImageMap{}
	}

	detail := productDetail{
		Product:  product,
		Variants: variants,
		Sizes:    attributeOptions(variant.SelectableSizes(variants), variants, variant.SizeInStock),
		Colors:   attributeOptions(variant.SelectableColors(variants), variants, variant.ColorInStock),
		Images:   imageViews(variant.ImageOrder(product, colorMap, variants), colorMap),
	}

	size := r.URL.Query().Get("size")
	color := r.URL.Query().Get("color")
	if size != "" && color != "" {
		detail.Selected = variant.Resolve(size, color, variants)
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: detail})
}

func attributeOptions(values []string, variants []domain.Variant, inStock func(string, []domain.Variant) bool) []AttributeOption {
	opts := make([]AttributeOption, 0, len(values))
	for _, v := range values {
		opts = append(opts, AttributeOption{Value: v, InStock: inStock(v, variants)})
	}
	return opts
}

func imageViews(urls []string, colorMap domain.ColorImageMap) []ImageView {
	views := make([]ImageView, 0, len(urls))
	for _, u := range urls {
		view := ImageView{URL: u}
		if color, ok := variant.ColorForImage(u, colorMap); ok {
			view.Color = color
		}
		views = append(views, view)
	}
	return views
}
