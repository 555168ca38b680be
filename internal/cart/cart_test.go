package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
	apperrors "github.com/cintaaprilianti/medina-stuff-sub001/pkg/errors"
)

func line(productID, variantID string, qty int) domain.CartLine {
	return domain.CartLine{
		ProductID: productID,
		VariantID: variantID,
		Name:      "Product " + productID,
		Quantity:  qty,
		UnitPrice: 1000,
		MaxStock:  10,
	}
}

// ============================================================================
// AddLine tests
// ============================================================================

func TestAddLine_AppendsNewLine(t *testing.T) {
	next, err := AddLine(nil, line("p1", "v1", 2), 10)
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, 2, next[0].Quantity)
}

func TestAddLine_MergesByIdentity(t *testing.T) {
	lines := []domain.CartLine{line("p1", "v1", 2)}

	next, err := AddLine(lines, line("p1", "v1", 3), 10)
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, 5, next[0].Quantity)
}

func TestAddLine_DifferentVariantIsNewLine(t *testing.T) {
	lines := []domain.CartLine{line("p1", "v1", 2)}

	next, err := AddLine(lines, line("p1", "v2", 1), 10)
	require.NoError(t, err)
	assert.Len(t, next, 2)
}

func TestAddLine_AbsentVariantDoesNotCollide(t *testing.T) {
	// A line without a variant must never merge into a line with one.
	lines := []domain.CartLine{line("p1", "v1", 2)}

	next, err := AddLine(lines, line("p1", "", 1), 10)
	require.NoError(t, err)
	assert.Len(t, next, 2)
}

func TestAddLine_PreservesInsertionOrder(t *testing.T) {
	lines := []domain.CartLine{line("p1", "v1", 1), line("p2", "v2", 1)}

	next, err := AddLine(lines, line("p1", "v1", 1), 10)
	require.NoError(t, err)
	require.Len(t, next, 2)
	assert.Equal(t, "p1", next[0].ProductID)
	assert.Equal(t, "p2", next[1].ProductID)
}

func TestAddLine_RejectsOverCeiling(t *testing.T) {
	lines := []domain.CartLine{line("p1", "v1", 8)}

	next, err := AddLine(lines, line("p1", "v1", 3), 10)
	require.Error(t, err)

	available, ok := apperrors.AvailableStock(err)
	require.True(t, ok)
	assert.Equal(t, 10, available)

	// Rejection is atomic: the returned cart is the input, unchanged.
	require.Len(t, next, 1)
	assert.Equal(t, 8, next[0].Quantity)
}

func TestAddLine_RejectsNeverClamps(t *testing.T) {
	next, err := AddLine(nil, line("p1", "v1", 5), 3)
	require.Error(t, err)
	assert.Empty(t, next)

	available, ok := apperrors.AvailableStock(err)
	require.True(t, ok)
	assert.Equal(t, 3, available)
}

func TestAddLine_ExactCeilingAllowed(t *testing.T) {
	next, err := AddLine(nil, line("p1", "v1", 3), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, next[0].Quantity)
}

func TestAddLine_ZeroStockRejectsEverything(t *testing.T) {
	_, err := AddLine(nil, line("p1", "v1", 1), 0)
	require.Error(t, err)

	available, _ := apperrors.AvailableStock(err)
	assert.Equal(t, 0, available)
}

func TestAddLine_InputSliceUntouchedOnMerge(t *testing.T) {
	lines := []domain.CartLine{line("p1", "v1", 2)}

	_, err := AddLine(lines, line("p1", "v1", 3), 10)
	require.NoError(t, err)
	assert.Equal(t, 2, lines[0].Quantity)
}

// ============================================================================
// RemoveLine tests
// ============================================================================

func TestRemoveLine_RemovesMatch(t *testing.T) {
	lines := []domain.CartLine{line("p1", "v1", 1), line("p2", "v2", 1)}

	next := RemoveLine(lines, "p1", "v1")
	require.Len(t, next, 1)
	assert.Equal(t, "p2", next[0].ProductID)
}

func TestRemoveLine_AbsentIsNoOp(t *testing.T) {
	lines := []domain.CartLine{line("p1", "v1", 1)}

	next := RemoveLine(lines, "p9", "v9")
	assert.Equal(t, lines, next)
}

func TestRemoveLine_VariantIdentityMatters(t *testing.T) {
	lines := []domain.CartLine{line("p1", "v1", 1)}

	next := RemoveLine(lines, "p1", "")
	assert.Len(t, next, 1)
}

// ============================================================================
// Toggle tests
// ============================================================================

func TestToggle_AddsWhenAbsent(t *testing.T) {
	next, member := Toggle([]string{"p1"}, "p2")
	assert.True(t, member)
	assert.Equal(t, []string{"p1", "p2"}, next)
}

func TestToggle_RemovesWhenPresent(t *testing.T) {
	next, member := Toggle([]string{"p1", "p2"}, "p1")
	assert.False(t, member)
	assert.Equal(t, []string{"p2"}, next)
}

func TestToggle_IsInvolution(t *testing.T) {
	original := []string{"p1", "p2", "p3"}

	once, member := Toggle(original, "p2")
	assert.False(t, member)

	twice, member := Toggle(once, "p2")
	assert.True(t, member)
	assert.ElementsMatch(t, original, twice)
}

func TestToggle_EmptyWishlist(t *testing.T) {
	next, member := Toggle(nil, "p1")
	assert.True(t, member)
	assert.Equal(t, []string{"p1"}, next)
}
