// Package upstream is the typed client for the commerce HTTP API. The API
// is consumed as a black box; every response is normalized to domain types
// at this boundary.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/errors"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/httpclient"
)

// allProductsPageSize is the page size used when walking the full catalog.
const allProductsPageSize = 100

// Client calls the commerce API.
type Client struct {
	baseURL string
	http    *httpclient.CircuitBreakerClient
	logger  *slog.Logger
}

// NewClient creates a commerce API client. baseURL includes the /api prefix.
func NewClient(baseURL string, hc *httpclient.CircuitBreakerClient, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		logger:  logger,
	}
}

// --- Categories ---

// Categories lists categories; includeInactive also returns disabled ones.
func (c *Client) Categories(ctx context.Context, includeInactive bool) ([]domain.Category, error) {
	q := url.Values{}
	if includeInactive {
		q.Set("includeInactive", "true")
	}

	var payload []categoryPayload
	if err := c.do(ctx, http.MethodGet, "/categories", "", q, nil, &payload); err != nil {
		return nil, err
	}

	out := make([]domain.Category, 0, len(payload))
	for i := range payload {
		out = append(out, payload[i].toDomain())
	}
	return out, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, token string, in CategoryInput) error {
	return c.do(ctx, http.MethodPost, "/categories", token, nil, in, nil)
}

// UpdateCategory updates a category.
func (c *Client) UpdateCategory(ctx context.Context, token, id string, in CategoryInput) error {
	return c.do(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), token, nil, in, nil)
}

// DeleteCategory deletes a category.
func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), token, nil, nil, nil)
}

// --- Products ---

// Products fetches one page of the product listing.
func (c *Client) Products(ctx context.Context, query ProductQuery) (*ProductPage, error) {
	q := url.Values{}
	if query.Page > 0 {
		q.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Search != "" {
		q.Set("search", query.Search)
	}
	if query.CategoryID != "" {
		q.Set("categoryId", query.CategoryID)
	}
	if query.Status != "" {
		q.Set("status", query.Status)
	}
	if query.Active != nil {
		q.Set("active", strconv.FormatBool(*query.Active))
	}
	if query.Sort != "" {
		q.Set("sort", query.Sort)
	}

	var envelope productListEnvelope
	if err := c.do(ctx, http.MethodGet, "/products", "", q, nil, &envelope); err != nil {
		return nil, err
	}

	page := &ProductPage{
		Products:   make([]domain.Product, 0, len(envelope.Data)),
		Total:      envelope.Meta.Total,
		TotalPages: envelope.Meta.TotalPages,
	}
	for i := range envelope.Data {
		page.Products = append(page.Products, envelope.Data[i].toDomain())
	}
	return page, nil
}

// AllProducts walks every page of the active product listing. Used to build
// the catalog snapshot.
func (c *Client) AllProducts(ctx context.Context) ([]domain.Product, error) {
	active := true
	var all []domain.Product

	for page := 1; ; page++ {
		p, err := c.Products(ctx, ProductQuery{
			Page:   page,
			Limit:  allProductsPageSize,
			Active: &active,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, p.Products...)
		if page >= p.TotalPages || len(p.Products) == 0 {
			break
		}
	}
	return all, nil
}

// productBody is ProductInput in wire form, with images packed into the
// API's delimited field.
type productBody struct {
	ProductInput
	Images string `json:"images"`
}

// CreateProduct creates a product.
func (c *Client) CreateProduct(ctx context.Context, token string, in ProductInput) error {
	body := productBody{ProductInput: in, Images: domain.JoinImageList(in.ImageURLs)}
	return c.do(ctx, http.MethodPost, "/products", token, nil, body, nil)
}

// UpdateProduct updates a product.
func (c *Client) UpdateProduct(ctx context.Context, token, id string, in ProductInput) error {
	body := productBody{ProductInput: in, Images: domain.JoinImageList(in.ImageURLs)}
	return c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), token, nil, body, nil)
}

// DeleteProduct deletes a product.
func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), token, nil, nil, nil)
}

// --- Variants ---

// Variants lists a product's variants.
func (c *Client) Variants(ctx context.Context, productID string, includeInactive bool) ([]domain.Variant, error) {
	q := url.Values{}
	if includeInactive {
		q.Set("includeInactive", "true")
	}

	var payload []variantPayload
	path := "/products/" + url.PathEscape(productID) + "/variants"
	if err := c.do(ctx, http.MethodGet, path, "", q, nil, &payload); err != nil {
		return nil, err
	}

	out := make([]domain.Variant, 0, len(payload))
	for i := range payload {
		out = append(out, payload[i].toDomain())
	}
	return out, nil
}

// CreateVariant creates a variant under a product.
func (c *Client) CreateVariant(ctx context.Context, token, productID string, in VariantInput) error {
	path := "/products/" + url.PathEscape(productID) + "/variants"
	return c.do(ctx, http.MethodPost, path, token, nil, in, nil)
}

// UpdateVariant updates a variant.
func (c *Client) UpdateVariant(ctx context.Context, token, id string, in VariantInput) error {
	return c.do(ctx, http.MethodPut, "/variants/"+url.PathEscape(id), token, nil, in, nil)
}

// DeleteVariant deletes a variant.
func (c *Client) DeleteVariant(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/variants/"+url.PathEscape(id), token, nil, nil, nil)
}

// --- Upload ---

// UploadImage uploads an image and returns its hosted URL.
func (c *Client) UploadImage(ctx context.Context, token, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("create multipart field: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy image data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/image", &buf)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return "", errors.Upstream("image upload failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.responseError(resp)
	}

	var envelope uploadEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return envelope.URL, nil
}

// --- Orders and payments ---

// AdminOrders lists recent orders for the admin dashboard.
func (c *Client) AdminOrders(ctx context.Context, token string, limit int) ([]domain.Order, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var envelope adminOrdersEnvelope
	if err := c.do(ctx, http.MethodGet, "/orders/admin/all", token, q, nil, &envelope); err != nil {
		return nil, err
	}

	payload := envelope.list()
	out := make([]domain.Order, 0, len(payload))
	for i := range payload {
		out = append(out, payload[i].toDomain())
	}
	return out, nil
}

// PaymentsByOrder lists the payments recorded against an order.
func (c *Client) PaymentsByOrder(ctx context.Context, token, orderID string) ([]domain.Payment, error) {
	var envelope paymentsEnvelope
	path := "/payments/order/" + url.PathEscape(orderID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, nil, &envelope); err != nil {
		return nil, err
	}

	out := make([]domain.Payment, 0, len(envelope.Payments))
	for i := range envelope.Payments {
		out = append(out, envelope.Payments[i].toDomain())
	}
	return out, nil
}

// UpdateOrderStatus sets an order's status.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(orderID)+"/status", token, nil, body, nil)
}

// UpdatePaymentStatus sets a payment's status.
func (c *Client) UpdatePaymentStatus(ctx context.Context, token, paymentID, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, "/payments/"+url.PathEscape(paymentID)+"/status", token, nil, body, nil)
}

// --- Plumbing ---

// do executes one API call: optional JSON body in, optional JSON body out.
// A 401 maps to ErrUnauthorized so the caller can clear the session.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return errors.Upstream(fmt.Sprintf("%s %s failed", method, path), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.responseError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// responseError translates a non-2xx response into an AppError, preserving
// the API's message when the body is structured.
func (c *Client) responseError(resp *http.Response) error {
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		bodyBytes = nil
	}

	message := fmt.Sprintf("commerce api returned status %d", resp.StatusCode)
	var parsed apiError
	if json.Unmarshal(bodyBytes, &parsed) == nil {
		switch {
		case parsed.Error != nil && parsed.Error.Message != "":
			message = parsed.Error.Message
		case parsed.Message != "":
			message = parsed.Message
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return errors.Unauthorized(message)
	case http.StatusForbidden:
		return errors.Forbidden(message)
	case http.StatusNotFound:
		return &errors.AppError{Code: "NOT_FOUND", Message: message, Status: http.StatusNotFound, Err: errors.ErrNotFound}
	case http.StatusBadRequest:
		return errors.InvalidInput(message)
	default:
		return errors.Upstream(message, fmt.Errorf("status %d", resp.StatusCode))
	}
}
