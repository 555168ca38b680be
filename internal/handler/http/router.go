// Package http exposes the storefront engine over HTTP: catalog views,
// session-scoped cart and wishlist, and the admin passthroughs.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/store"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/health"
	"github.com/cintaaprilianti/medina-stuff-sub001/pkg/middleware"
)

// RouterConfig carries the tunables the router needs from service config.
type RouterConfig struct {
	RateLimitRPS   int
	RateLimitBurst int
	AllowedOrigins []string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	catalogHandler *CatalogHandler,
	cartHandler *CartHandler,
	sessionHandler *SessionHandler,
	adminHandler *AdminHandler,
	sessionStore store.SessionStore,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.RequestLogger(logger))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowedOrigins = cfg.AllowedOrigins
	}
	r.Use(middleware.CORS(corsCfg))

	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))
	}

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(SessionID)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", catalogHandler.View)
			r.Get("/products/{productID}", catalogHandler.Product)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddLine)
			r.Delete("/items/{productID}", cartHandler.RemoveLine)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", cartHandler.GetWishlist)
			r.Post("/{productID}/toggle", cartHandler.ToggleWishlist)
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/", sessionHandler.Profile)
			r.Delete("/", sessionHandler.EndSession)
			r.Post("/token", sessionHandler.AttachToken)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin(sessionStore, logger))

			r.Get("/dashboard", adminHandler.Dashboard)
			r.Get("/orders", adminHandler.Orders)
			r.Patch("/orders/{orderID}/status", adminHandler.UpdateOrderStatus)
			r.Patch("/payments/{paymentID}/status", adminHandler.UpdatePaymentStatus)

			r.Post("/images", adminHandler.UploadImage)

			r.Post("/categories", adminHandler.CreateCategory)
			r.Put("/categories/{categoryID}", adminHandler.UpdateCategory)
			r.Delete("/categories/{categoryID}", adminHandler.DeleteCategory)

			r.Post("/products", adminHandler.CreateProduct)
			r.Put("/products/{productID}", adminHandler.UpdateProduct)
			r.Delete("/products/{productID}", adminHandler.DeleteProduct)
			r.Put("/products/{productID}/color-images", adminHandler.SetColorImages)

			r.Post("/products/{productID}/variants", adminHandler.CreateVariant)
			r.Put("/variants/{variantID}", adminHandler.UpdateVariant)
			r.Delete("/variants/{variantID}", adminHandler.DeleteVariant)
		})
	})

	return r
}
