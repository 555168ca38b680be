// Package memory implements store.SessionStore in process memory. It backs
// tests and the ephemeral mode where no Redis is configured.
package memory

import (
	"context"
	"sync"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
	apperrors "github.com/cintaaprilianti/medina-stuff-sub001/pkg/errors"
)

type sessionState struct {
	cart     []domain.CartLine
	wishlist []string
	token    string
	user     *domain.UserProfile
}

// Store is an in-memory SessionStore.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]*sessionState
	colorMaps map[string]domain.ColorImageMap
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		sessions:  make(map[string]*sessionState),
		colorMaps: make(map[string]domain.ColorImageMap),
	}
}

func (s *Store) session(sessionID string) *sessionState {
	st, ok := s.sessions[sessionID]
	if !ok {
		st = &sessionState{}
		s.sessions[sessionID] = st
	}
	return st
}

// Cart returns a copy of the session's cart lines.
func (s *Store) Cart(_ context.Context, sessionID string) ([]domain.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok || len(st.cart) == 0 {
		return []domain.CartLine{}, nil
	}
	out := make([]domain.CartLine, len(st.cart))
	copy(out, st.cart)
	return out, nil
}

// SetCart overwrites the session's cart lines.
func (s *Store) SetCart(_ context.Context, sessionID string, lines []domain.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]domain.CartLine, len(lines))
	copy(stored, lines)
	s.session(sessionID).cart = stored
	return nil
}

// Wishlist returns a copy of the session's wishlist.
func (s *Store) Wishlist(_ context.Context, sessionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok || len(st.wishlist) == 0 {
		return []string{}, nil
	}
	out := make([]string, len(st.wishlist))
	copy(out, st.wishlist)
	return out, nil
}

// SetWishlist overwrites the session's wishlist.
func (s *Store) SetWishlist(_ context.Context, sessionID string, productIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]string, len(productIDs))
	copy(stored, productIDs)
	s.session(sessionID).wishlist = stored
	return nil
}

// Token returns the session's access token.
func (s *Store) Token(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok || st.token == "" {
		return "", apperrors.NotFound("token", sessionID)
	}
	return st.token, nil
}

// SetToken stores the session's access token.
func (s *Store) SetToken(_ context.Context, sessionID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(sessionID).token = token
	return nil
}

// User returns the session's cached profile.
func (s *Store) User(_ context.Context, sessionID string) (*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok || st.user == nil {
		return nil, apperrors.NotFound("user", sessionID)
	}
	u := *st.user
	return &u, nil
}

// SetUser caches the session's profile.
func (s *Store) SetUser(_ context.Context, sessionID string, user *domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := *user
	s.session(sessionID).user = &u
	return nil
}

// ColorImageMap returns a copy of the product's color-to-image map.
func (s *Store) ColorImageMap(_ context.Context, productID string) (domain.ColorImageMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.colorMaps[productID]
	if !ok {
		return domain.ColorImageMap{}, nil
	}
	out := make(domain.ColorImageMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out, nil
}

// SetColorImageMap overwrites the product's color-to-image map.
func (s *Store) SetColorImageMap(_ context.Context, productID string, m domain.ColorImageMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(domain.ColorImageMap, len(m))
	for k, v := range m {
		stored[k] = v
	}
	s.colorMaps[productID] = stored
	return nil
}

// ClearSession removes every key owned by the session.
func (s *Store) ClearSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}
