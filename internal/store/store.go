// Package store defines the persisted client-side session state: cart,
// wishlist, access token, cached user profile, and per-product color-image
// maps. Engines receive a SessionStore as an injected collaborator so they
// stay pure and independently testable.
package store

import (
	"context"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
)

// SessionStore persists per-session client state. Reads of absent
// collections return empty values, not errors; Token and User return
// pkg/errors.ErrNotFound when absent. Implementations are last-writer-wins;
// no cross-session locking is provided.
type SessionStore interface {
	// Cart returns the session's cart lines; empty when none stored.
	Cart(ctx context.Context, sessionID string) ([]domain.CartLine, error)

	// SetCart overwrites the session's cart lines.
	SetCart(ctx context.Context, sessionID string, lines []domain.CartLine) error

	// Wishlist returns the session's wishlisted product IDs; empty when none.
	Wishlist(ctx context.Context, sessionID string) ([]string, error)

	// SetWishlist overwrites the session's wishlist.
	SetWishlist(ctx context.Context, sessionID string, productIDs []string) error

	// Token returns the session's access token.
	Token(ctx context.Context, sessionID string) (string, error)

	// SetToken stores the session's access token.
	SetToken(ctx context.Context, sessionID, token string) error

	// User returns the session's cached profile.
	User(ctx context.Context, sessionID string) (*domain.UserProfile, error)

	// SetUser caches the session's profile.
	SetUser(ctx context.Context, sessionID string, user *domain.UserProfile) error

	// ColorImageMap returns the color-to-image map for a product; empty when
	// none stored. The map is catalog display metadata shared across sessions.
	ColorImageMap(ctx context.Context, productID string) (domain.ColorImageMap, error)

	// SetColorImageMap overwrites the color-to-image map for a product.
	SetColorImageMap(ctx context.Context, productID string, m domain.ColorImageMap) error

	// ClearSession removes every key owned by the session (cart, wishlist,
	// token, user). Called when the commerce API answers 401.
	ClearSession(ctx context.Context, sessionID string) error
}
