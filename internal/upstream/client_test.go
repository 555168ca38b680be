package upstream

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cintaaprilianti/medina-stuff-sub001/pkg/errors"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/httpclient"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	breaker := httpclient.NewCircuitBreakerClient(httpclient.New(cfg), httpclient.DefaultCircuitBreakerConfig("test"), logger)
	return NewClient(srv.URL+"/api", breaker, logger)
}

// ============================================================================
// Product listing tests
// ============================================================================

func TestProducts_ParsesEnvelopeAndImageList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [{
				"id": "p1",
				"name": "Gamis Basic",
				"basePrice": 150000,
				"active": true,
				"images": "a.jpg|||b.jpg|||c.jpg",
				"category": {"id": "c1", "name": "Gamis"}
			}],
			"meta": {"total": 45, "totalPages": 3}
		}`))
	})

	page, err := client.Products(context.Background(), ProductQuery{Page: 2, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, 45, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Products, 1)

	p := page.Products[0]
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, p.ImageURLs)
	assert.Equal(t, "Gamis", p.CategoryName)
	assert.Equal(t, "c1", p.CategoryID)
}

func TestAllProducts_WalksEveryPage(t *testing.T) {
	pagesServed := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		pagesServed++
		page := r.URL.Query().Get("page")
		assert.Equal(t, "true", r.URL.Query().Get("active"))

		w.Header().Set("Content-Type", "application/json")
		if page == "1" {
			_, _ = w.Write([]byte(`{"data": [{"id": "p1"}], "meta": {"total": 2, "totalPages": 2}}`))
			return
		}
		_, _ = w.Write([]byte(`{"data": [{"id": "p2"}], "meta": {"total": 2, "totalPages": 2}}`))
	})

	products, err := client.AllProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, 2, pagesServed)
}

// ============================================================================
// Admin orders envelope tests
// ============================================================================

func TestAdminOrders_DataKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/admin/all", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"id": "o1", "status": "PAID", "totalAmount": 100}]}`))
	})

	orders, err := client.AdminOrders(context.Background(), "tok", 50)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
}

func TestAdminOrders_OrdersKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orders": [{"id": "o2", "status": "PROCESSING"}]}`))
	})

	orders, err := client.AdminOrders(context.Background(), "tok", 50)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o2", orders[0].ID)
}

// ============================================================================
// Payments tests
// ============================================================================

func TestPaymentsByOrder_AmountFromJumlah(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payments/order/o1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"payments": [{"id": "pay1", "orderId": "o1", "status": "settlement", "jumlah": 250000}]}`))
	})

	payments, err := client.PaymentsByOrder(context.Background(), "tok", "o1")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(250000), payments[0].Amount)
	assert.True(t, payments[0].IsSettled())
}

// ============================================================================
// Error mapping tests
// ============================================================================

func TestDo_401MapsToUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "token expired"}`))
	})

	_, err := client.AdminOrders(context.Background(), "stale", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Contains(t, err.Error(), "token expired")
}

func TestDo_404MapsToNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"code": "NOT_FOUND", "message": "no such product"}}`))
	})

	_, err := client.Variants(context.Background(), "missing", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDo_StructuredErrorMessagePreserved(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": "VALIDATION", "message": "name is required"}}`))
	})

	err := client.CreateCategory(context.Background(), "tok", CategoryInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

// ============================================================================
// Mutation wire format tests
// ============================================================================

func TestCreateProduct_PacksImagesField(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, jsonDecode(r, &gotBody))
		w.WriteHeader(http.StatusCreated)
	})

	in := ProductInput{Name: "Gamis", ImageURLs: []string{"a.jpg", "b.jpg"}}
	require.NoError(t, client.CreateProduct(context.Background(), "tok", in))

	assert.Equal(t, "a.jpg|||b.jpg", gotBody["images"])
	_, hasRawList := gotBody["image_urls"]
	assert.False(t, hasRawList)
}

func TestUpdateOrderStatus_SendsStatusBody(t *testing.T) {
	var gotBody map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/orders/o1/status", r.URL.Path)
		require.NoError(t, jsonDecode(r, &gotBody))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.UpdateOrderStatus(context.Background(), "tok", "o1", "SHIPPED"))
	assert.Equal(t, "SHIPPED", gotBody["status"])
}

func jsonDecode(r *http.Request, dst any) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(dst)
}
