package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/catalog"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/stats"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/store"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/upstream"
	apperrors "github.com/cintaaprilianti/medina-stuff-sub001/pkg/errors"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/httputil"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/validator"
)

// defaultOrderLimit bounds the admin order listing when no limit is given.
const defaultOrderLimit = 100

// maxUploadBytes bounds admin image uploads.
const maxUploadBytes = 10 << 20

// AdminAPI is the slice of the commerce API the admin handlers pass through
// to.
type AdminAPI interface {
	AdminOrders(ctx context.Context, token string, limit int) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, token, orderID, status string) error
	UpdatePaymentStatus(ctx context.Context, token, paymentID, status string) error
	UploadImage(ctx context.Context, token, filename string, file io.Reader) (string, error)
	CreateCategory(ctx context.Context, token string, in upstream.CategoryInput) error
	UpdateCategory(ctx context.Context, token, id string, in upstream.CategoryInput) error
	DeleteCategory(ctx context.Context, token, id string) error
	CreateProduct(ctx context.Context, token string, in upstream.ProductInput) error
	UpdateProduct(ctx context.Context, token, id string, in upstream.ProductInput) error
	DeleteProduct(ctx context.Context, token, id string) error
	CreateVariant(ctx context.Context, token, productID string, in upstream.VariantInput) error
	UpdateVariant(ctx context.Context, token, id string, in upstream.VariantInput) error
	DeleteVariant(ctx context.Context, token, id string) error
}

// AdminHandler serves the admin dashboard and catalog management
// passthroughs. Every route sits behind RequireAdmin.
type AdminHandler struct {
	api     AdminAPI
	stats   *stats.Service
	catalog *catalog.Service
	store   store.SessionStore
	logger  *slog.Logger
}

// NewAdminHandler creates an admin HTTP handler.
func NewAdminHandler(api AdminAPI, statsSvc *stats.Service, cat *catalog.Service, st store.SessionStore, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		api:     api,
		stats:   statsSvc,
		catalog: cat,
		store:   st,
		logger:  logger,
	}
}

// Dashboard handles GET /api/v1/admin/dashboard. Orders are listed once and
// the aggregates derived from them; payment lookups fan out inside the stats
// service.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())

	orders, err := h.api.AdminOrders(r.Context(), token, orderLimit(r))
	if err != nil {
		writeSessionError(w, r, h.store, err, h.logger)
		return
	}

	dashboard := h.stats.Aggregate(r.Context(), token, orders)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: dashboard})
}

// Orders handles GET /api/v1/admin/orders
func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())

	orders, err := h.api.AdminOrders(r.Context(), token, orderLimit(r))
	if err != nil {
		writeSessionError(w, r, h.store, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: orders})
}

func orderLimit(r *http.Request) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return defaultOrderLimit
}

// StatusRequest is the JSON request body for order and payment status
// updates.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatus handles PATCH /api/v1/admin/orders/{orderID}/status
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	h.statusUpdate(w, r, chi.URLParam(r, "orderID"), h.api.UpdateOrderStatus)
}

// UpdatePaymentStatus handles PATCH /api/v1/admin/payments/{paymentID}/status
func (h *AdminHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	h.statusUpdate(w, r, chi.URLParam(r, "paymentID"), h.api.UpdatePaymentStatus)
}

func (h *AdminHandler) statusUpdate(w http.ResponseWriter, r *http.Request, id string, update func(context.Context, string, string, string) error) {
	var req StatusRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := update(r.Context(), tokenFromContext(r.Context()), id, req.Status); err != nil {
		writeSessionError(w, r, h.store, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": req.Status}})
}

// UploadImage handles POST /api/v1/admin/images. The multipart "image" part
// is streamed through to the commerce API and the hosted URL returned.
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid multipart body"), h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("image file is required"), h.logger)
		return
	}
	defer file.Close()

	url, err := h.api.UploadImage(r.Context(), tokenFromContext(r.Context()), header.Filename, file)
	if err != nil {
		writeSessionError(w, r, h.store, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"url": url}})
}

// CategoryRequest is the JSON request body for category create/update.
type CategoryRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=200"`
	Active bool   `json:"active"`
}

// CreateCategory handles POST /api/v1/admin/categories
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	in := upstream.CategoryInput{Name: req.Name, Active: req.Active}
	if err := h.api.CreateCategory(r.Context(), tokenFromContext(r.Context()), in); err != nil {
		writeSessionError(w, r, h.store, err, h.logger)
		return
	}

	h.catalog.Invalidate()
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: req})
}

// UpdateCategory handles PUT /api/v1/admin/categories/{categoryID}
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	in := upstream.CategoryInput{Name: req.Name, Active: req.Active}
	if err := h.api.UpdateCategory(r.Context(), tokenFromContext(r.Context()), chi.URLParam(r, "categoryID"), in); err != nil {
		writeSessionError(w, r, h.store, err, h.logger)
		return
	}

	h.catalog.Invalidate()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: req})
}

// DeleteCategory handles DELETE /api/v1/admin/categories/{categoryID}
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.api.DeleteCategory(r.Context(), tokenFromContext(r.Context()), chi.URLParam(r, "categoryID")); err != nil {
		writeSessionError(w, r, h.store, err, h.logger)
		return
	}

	h.catalog.Invalidate()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// ProductRequest is the JSON request body for product create/update.
type ProductRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=500"`
	Description string   `json:"description"`
	BasePrice   int64    `json:"base_price" validate:"gte=0"`
	Weight      int      `json:"weight" validate:"gte=0"`
	Status      string   `json:"status" validate:"omitempty,oneof=READY PRE_ORDER DISCONTINUED"`
	Active      bool     `json:"active"`
	CategoryID  string   `json:"category_id"`
	ImageURLs   []string `json:"image_urls"`
}

func (req *ProductRequest) input() upstream.ProductInput {
	return upstream.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Weight:      req.Weight,
		Status:      req.Status,
		Active:      req.Active,
		CategoryID:  req.CategoryID,
		ImageURLs:   req.ImageURLs,
	}
}

// CreateProduct handles POST /api/v1/admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.api.CreateProduct(r.Context(), tokenFromContext(r.Context()), req.input()); err != nil {
		writeSessionError(w, r, h.store, err, h.logger)
		return
	}

	h.catalog.Invalidate()
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: req})
}

// UpdateProduct handles PUT /api/v1/admin/products/{productID}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.api.UpdateProduct(r.Context(), tokenFromContext(r.Context()), chi.URLParam(r, "productID"), req.input()); err != nil {
		writeSessionError(w, r, h.store, err, h.logger)
		return
	}

	h.catalog.Invalidate()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: req})
}

// DeleteProduct handles DELETE /api/v1/admin/products/{productID}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.api.DeleteProduct(r.Context(), tokenFromContext(r.Context()), chi.URLParam(r, "productID")); err != nil {
		writeSessionError(w, r, h.store, err, h.logger)
		return
	}

	h.catalog.Invalidate()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// VariantRequest is the JSON request body for variant create/update.
type VariantRequest struct {
	Size   string `json:"size" validate:"required"`
	Color  string `json:"color" validate:"required"`
	Stock  int    `json:"stock" validate:"gte=0"`
	Price  *int64 `json:"price" validate:"omitempty,gte=0"`
	Active bool   `json:"active"`
}

func (req *VariantRequest) input() upstream.VariantInput {
	return upstream.VariantInput{
		Size:   req.Size,
		Color:  req.Color,
		Stock:  req.Stock,
		Price:  req.Price,
		Active: req.Active,
	}
}

// CreateVariant handles POST /api/v1/admin/products/{productID}/variants
func (h *AdminHandler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	var req VariantRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.api.CreateVariant(r.Context(), tokenFromContext(r.Context()), chi.URLParam(r, "productID"), req.input()); err != nil {
		writeSessionError(w, r, h.store, err, h.logger)
		return
	}

	h.catalog.Invalidate()
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: req})
}

// UpdateVariant handles PUT /api/v1/admin/variants/{variantID}
func (h *AdminHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	var req VariantRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.api.UpdateVariant(r.Context(), tokenFromContext(r.Context()), chi.URLParam(r, "variantID"), req.input()); err != nil {
		writeSessionError(w, r, h.store, err, h.logger)
		return
	}

	h.catalog.Invalidate()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: req})
}

// DeleteVariant handles DELETE /api/v1/admin/variants/{variantID}
func (h *AdminHandler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	if err := h.api.DeleteVariant(r.Context(), tokenFromContext(r.Context()), chi.URLParam(r, "variantID")); err != nil {
		writeSessionError(w, r, h.store, err, h.logger)
		return
	}

	h.catalog.Invalidate()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// SetColorImages handles PUT /api/v1/admin/products/{productID}/color-images.
// The map assigns one catalog image per color and drives the product page's
// color-grouped image order.
func (h *AdminHandler) SetColorImages(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body"), h.logger)
		return
	}

	productID := chi.URLParam(r, "productID")
	if err := h.store.SetColorImageMap(r.Context(), productID, domain.ColorImageMap(req)); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: req})
}
