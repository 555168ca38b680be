package cart

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/event"
	"github.com/cintaaprilianti/medina-stuff-sub001/internal/store"
	apperrors "github.com/cintaaprilianti/medina-stuff-sub001/pkg/errors"
)

// Publisher publishes session events after successful mutations. Failures
// are logged, never surfaced: the mutation has already been persisted.
type Publisher interface {
	CartUpdated(ctx context.Context, sessionID string, lines []domain.CartLine) error
	CartCleared(ctx context.Context, sessionID string) error
	WishlistChanged(ctx context.Context, sessionID, productID string, member bool, products []string) error
}

// Service wraps the pure cart operations with write-through persistence,
// change notification, and event publishing.
type Service struct {
	store    store.SessionStore
	notifier *event.Notifier
	events   Publisher
	logger   *slog.Logger
}

// NewService creates a cart service. events may be nil when external
// publishing is disabled.
func NewService(st store.SessionStore, notifier *event.Notifier, events Publisher, logger *slog.Logger) *Service {
	return &Service{
		store:    st,
		notifier: notifier,
		events:   events,
		logger:   logger,
	}
}

// Cart returns the session's current cart lines.
func (s *Service) Cart(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	lines, err := s.store.Cart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return lines, nil
}

// Add merges a line into the session's cart. The line's MaxStock snapshot is
// the ceiling; an over-ceiling addition is rejected atomically with the
// available quantity and nothing is persisted.
func (s *Service) Add(ctx context.Context, sessionID string, line domain.CartLine) ([]domain.CartLine, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if line.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if line.Quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}
	if line.UnitPrice < 0 {
		return nil, apperrors.InvalidInput("unit price must not be negative")
	}

	lines, err := s.store.Cart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	next, err := AddLine(lines, line, line.MaxStock)
	if err != nil {
		return nil, err
	}

	if err := s.persistCart(ctx, sessionID, next); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "line added to cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", line.ProductID),
		slog.String("variant_id", line.VariantID),
		slog.Int("quantity", line.Quantity),
	)

	return next, nil
}

// Remove deletes the line with the given identity from the session's cart.
// Removing an absent line persists nothing and is not an error.
func (s *Service) Remove(ctx context.Context, sessionID, productID, variantID string) ([]domain.CartLine, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	lines, err := s.store.Cart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	next := RemoveLine(lines, productID, variantID)
	if len(next) == len(lines) {
		return lines, nil
	}

	if err := s.persistCart(ctx, sessionID, next); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "line removed from cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
		slog.String("variant_id", variantID),
	)

	return next, nil
}

// Clear empties the session's cart.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.store.SetCart(ctx, sessionID, []domain.CartLine{}); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	s.notify(ctx, sessionID, nil, -1)

	if s.events != nil {
		if err := s.events.CartCleared(ctx, sessionID); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "cart cleared", slog.String("session_id", sessionID))
	return nil
}

// Wishlist returns the session's wishlisted product IDs.
func (s *Service) Wishlist(ctx context.Context, sessionID string) ([]string, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	ids, err := s.store.Wishlist(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return ids, nil
}

// ToggleWishlist flips a product's wishlist membership and persists the
// result. It returns the new wishlist and whether the product is now in it.
func (s *Service) ToggleWishlist(ctx context.Context, sessionID, productID string) ([]string, bool, error) {
	if sessionID == "" {
		return nil, false, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, false, apperrors.InvalidInput("product id is required")
	}

	wishlist, err := s.store.Wishlist(ctx, sessionID)
	if err != nil {
		return nil, false, fmt.Errorf("get wishlist: %w", err)
	}

	next, member := Toggle(wishlist, productID)

	if err := s.store.SetWishlist(ctx, sessionID, next); err != nil {
		return nil, false, fmt.Errorf("save wishlist: %w", err)
	}

	s.notify(ctx, sessionID, nil, len(next))

	if s.events != nil {
		if err := s.events.WishlistChanged(ctx, sessionID, productID, member, next); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish wishlist.changed event",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "wishlist toggled",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
		slog.Bool("member", member),
	)

	return next, member, nil
}

// persistCart writes the cart through to the store and fans out change
// signals.
func (s *Service) persistCart(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	if err := s.store.SetCart(ctx, sessionID, lines); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	s.notify(ctx, sessionID, lines, -1)

	if s.events != nil {
		if err := s.events.CartUpdated(ctx, sessionID, lines); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// notify publishes an in-process change signal with recomputed counters.
// wishlistSize < 0 means the wishlist did not change in this mutation.
func (s *Service) notify(ctx context.Context, sessionID string, lines []domain.CartLine, wishlistSize int) {
	if s.notifier == nil {
		return
	}

	if wishlistSize < 0 {
		if ids, err := s.store.Wishlist(ctx, sessionID); err == nil {
			wishlistSize = len(ids)
		} else {
			wishlistSize = 0
		}
	}
	if lines == nil {
		if current, err := s.store.Cart(ctx, sessionID); err == nil {
			lines = current
		}
	}

	s.notifier.Publish(event.Change{
		SessionID:    sessionID,
		CartLines:    len(lines),
		CartQuantity: domain.CartQuantity(lines),
		WishlistSize: wishlistSize,
	})
}
