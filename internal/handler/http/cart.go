package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/cart"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/catalog"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/variant"
	apperrors "github.com/cintaaprilianti/medina-stuff-sub001/pkg/errors"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/httputil"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/validator"
)

// CartHandler handles the session-scoped cart and wishlist endpoints.
type CartHandler struct {
	cart     *cart.Service
	catalog  *catalog.Service
	variants VariantFetcher
	logger   *slog.Logger
}

// NewCartHandler creates a cart HTTP handler.
func NewCartHandler(svc *cart.Service, cat *catalog.Service, variants VariantFetcher, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		cart:     svc,
		catalog:  cat,
		variants: variants,
		logger:   logger,
	}
}

// AddLineRequest is the JSON request body for adding a product to the cart.
// Size and color select the variant; they are required when the product has
// variants.
type AddLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// cartView is the response body for cart reads and mutations.
type cartView struct {
	Lines    []domain.CartLine `json:"lines"`
	Quantity int               `json:"quantity"`
	Total    int64             `json:"total"`
}

func newCartView(lines []domain.CartLine) cartView {
	return cartView{
		Lines:    lines,
		Quantity: domain.CartQuantity(lines),
		Total:    domain.CartTotal(lines),
	}
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	lines, err := h.cart.Cart(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(lines)})
}

// AddLine handles POST /api/v1/cart/items. The product and variant are
// looked up fresh so the line snapshots current name, price, stock ceiling,
// and image. Exceeding the stock ceiling rejects the whole addition and
// reports the available quantity.
func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromContext(r.Context())

	var req AddLineRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	line, err := h.buildLine(r, req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if line == nil {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"},
		})
		return
	}

	lines, err := h.cart.Add(r.Context(), sid, *line)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(lines)})
}

// buildLine snapshots a cart line from the current catalog state. It returns
// (nil, nil) when the product does not exist.
func (h *CartHandler) buildLine(r *http.Request, req AddLineRequest) (*domain.CartLine, error) {
	ctx := r.Context()

	product, err := h.catalog.Product(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	variants, err := h.variants.Variants(ctx, req.ProductID, false)
	if err != nil {
		return nil, err
	}

	line := domain.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  req.Quantity,
		UnitPrice: product.BasePrice,
	}
	if len(product.ImageURLs) > 0 {
		line.ImageURL = product.ImageURLs[0]
	}

	if len(variants) == 0 {
		return nil, apperrors.InvalidInput("product has no purchasable variants")
	}

	resolved := variant.Resolve(req.Size, req.Color, variants)
	if resolved == nil {
		return nil, apperrors.InvalidInput("size and color do not match an available variant")
	}

	line.VariantID = resolved.ID
	line.Size = resolved.Size
	line.Color = resolved.Color
	line.UnitPrice = resolved.UnitPrice(product.BasePrice)
	line.MaxStock = resolved.Stock

	return &line, nil
}

// RemoveLine handles DELETE /api/v1/cart/items/{productID}. The variant is
// selected with the variantId query parameter; omitting it targets the
// no-variant line of the product.
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromContext(r.Context())
	productID := chi.URLParam(r, "productID")
	variantID := r.URL.Query().Get("variantId")

	lines, err := h.cart.Remove(r.Context(), sid, productID, variantID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(lines)})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromContext(r.Context())

	if err := h.cart.Clear(r.Context(), sid); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(nil)})
}

// wishlistView is the response body for wishlist reads and toggles.
type wishlistView struct {
	ProductIDs []string `json:"product_ids"`
	Size       int      `json:"size"`
	Member     *bool    `json:"member,omitempty"`
}

// GetWishlist handles GET /api/v1/wishlist
func (h *CartHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	ids, err := h.cart.Wishlist(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlistView{ProductIDs: ids, Size: len(ids)}})
}

// ToggleWishlist handles POST /api/v1/wishlist/{productID}/toggle
func (h *CartHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromContext(r.Context())
	productID := chi.URLParam(r, "productID")

	ids, member, err := h.cart.ToggleWishlist(r.Context(), sid, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlistView{
		ProductIDs: ids,
		Size:       len(ids),
		Member:     &member,
	}})
}
