package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_MatchSentinels(t *testing.T) {
	assert.ErrorIs(t, NotFound("cart", "s1"), ErrNotFound)
	assert.ErrorIs(t, InvalidInput("bad"), ErrInvalidInput)
	assert.ErrorIs(t, Unauthorized("no"), ErrUnauthorized)
	assert.ErrorIs(t, Forbidden("no"), ErrForbidden)
	assert.ErrorIs(t, Upstream("down", errors.New("boom")), ErrUpstream)
	assert.ErrorIs(t, StockExceeded(3), ErrStockExceeded)
}

func TestStockExceeded_CarriesAvailable(t *testing.T) {
	err := StockExceeded(7)

	available, ok := AvailableStock(err)
	require.True(t, ok)
	assert.Equal(t, 7, available)
}

func TestAvailableStock_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("add to cart: %w", StockExceeded(2))

	available, ok := AvailableStock(wrapped)
	require.True(t, ok)
	assert.Equal(t, 2, available)
}

func TestAvailableStock_NotAStockError(t *testing.T) {
	_, ok := AvailableStock(errors.New("boom"))
	assert.False(t, ok)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{NotFound("x", "1"), http.StatusNotFound},
		{InvalidInput("bad"), http.StatusBadRequest},
		{Unauthorized("no"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{StockExceeded(1), http.StatusConflict},
		{Upstream("down", errors.New("boom")), http.StatusBadGateway},
		{errors.New("unknown"), http.StatusInternalServerError},
		{fmt.Errorf("ctx: %w", ErrStockExceeded), http.StatusConflict},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, HTTPStatus(tt.err), "error %v", tt.err)
	}
}
