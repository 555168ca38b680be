// Package redis implements store.SessionStore on Redis so session state
// survives process restarts and is shared across replicas.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
	apperrors "github.com/cintaaprilianti/medina-stuff-sub001/pkg/errors"
)

const (
	cartKeyFmt     = "session:%s:cart"
	wishlistKeyFmt = "session:%s:wishlist"
	tokenKeyFmt    = "session:%s:token"
	userKeyFmt     = "session:%s:user"
	colorsKeyFmt   = "product:%s:colors"
)

// Store is a Redis-backed SessionStore. Session keys carry a TTL so
// abandoned sessions expire; color-image maps are catalog metadata and
// are stored without expiry.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a Redis-backed store with the given session TTL.
func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

func (s *Store) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Cart retrieves the session's cart lines; empty when none stored.
func (s *Store) Cart(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	ok, err := s.getJSON(ctx, fmt.Sprintf(cartKeyFmt, sessionID), &lines)
	if err != nil {
		return nil, err
	}
	if !ok || lines == nil {
		return []domain.CartLine{}, nil
	}
	return lines, nil
}

// SetCart persists the session's cart lines.
func (s *Store) SetCart(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	return s.setJSON(ctx, fmt.Sprintf(cartKeyFmt, sessionID), lines, s.ttl)
}

// Wishlist retrieves the session's wishlist; empty when none stored.
func (s *Store) Wishlist(ctx context.Context, sessionID string) ([]string, error) {
	var ids []string
	ok, err := s.getJSON(ctx, fmt.Sprintf(wishlistKeyFmt, sessionID), &ids)
	if err != nil {
		return nil, err
	}
	if !ok || ids == nil {
		return []string{}, nil
	}
	return ids, nil
}

// SetWishlist persists the session's wishlist.
func (s *Store) SetWishlist(ctx context.Context, sessionID string, productIDs []string) error {
	return s.setJSON(ctx, fmt.Sprintf(wishlistKeyFmt, sessionID), productIDs, s.ttl)
}

// Token retrieves the session's access token.
func (s *Store) Token(ctx context.Context, sessionID string) (string, error) {
	key := fmt.Sprintf(tokenKeyFmt, sessionID)

	token, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", apperrors.NotFound("token", sessionID)
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return token, nil
}

// SetToken persists the session's access token.
func (s *Store) SetToken(ctx context.Context, sessionID, token string) error {
	key := fmt.Sprintf(tokenKeyFmt, sessionID)

	if err := s.client.Set(ctx, key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// User retrieves the session's cached profile.
func (s *Store) User(ctx context.Context, sessionID string) (*domain.UserProfile, error) {
	var user domain.UserProfile
	ok, err := s.getJSON(ctx, fmt.Sprintf(userKeyFmt, sessionID), &user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotFound("user", sessionID)
	}
	return &user, nil
}

// SetUser caches the session's profile.
func (s *Store) SetUser(ctx context.Context, sessionID string, user *domain.UserProfile) error {
	return s.setJSON(ctx, fmt.Sprintf(userKeyFmt, sessionID), user, s.ttl)
}

// ColorImageMap retrieves the product's color-to-image map; empty when none.
func (s *Store) ColorImageMap(ctx context.Context, productID string) (domain.ColorImageMap, error) {
	var m domain.ColorImageMap
	ok, err := s.getJSON(ctx, fmt.Sprintf(colorsKeyFmt, productID), &m)
	if err != nil {
		return nil, err
	}
	if !ok || m == nil {
		return domain.ColorImageMap{}, nil
	}
	return m, nil
}

// SetColorImageMap persists the product's color-to-image map without expiry.
func (s *Store) SetColorImageMap(ctx context.Context, productID string, m domain.ColorImageMap) error {
	return s.setJSON(ctx, fmt.Sprintf(colorsKeyFmt, productID), m, 0)
}

// ClearSession removes every key owned by the session.
func (s *Store) ClearSession(ctx context.Context, sessionID string) error {
	keys := []string{
		fmt.Sprintf(cartKeyFmt, sessionID),
		fmt.Sprintf(wishlistKeyFmt, sessionID),
		fmt.Sprintf(tokenKeyFmt, sessionID),
		fmt.Sprintf(userKeyFmt, sessionID),
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del session %s: %w", sessionID, err)
	}
	return nil
}
