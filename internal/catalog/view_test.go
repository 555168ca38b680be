package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cintaaprilianti/medina-stuff-sub001/internal/domain"
)

func testProducts() []domain.Product {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Product{
		{ID: "p1", Name: "Gamis Syari Premium", CategoryName: "Gamis", BasePrice: 250000, CreatedAt: base.AddDate(0, 0, 1)},
		{ID: "p2", Name: "Khimar Instan", CategoryName: "Khimar", BasePrice: 90000, CreatedAt: base.AddDate(0, 0, 3)},
		{ID: "p3", Name: "Gamis Basic", CategoryName: "Gamis", BasePrice: 150000, CreatedAt: base},
		{ID: "p4", Name: "Mukena Travel", CategoryName: "Mukena", BasePrice: 120000, CreatedAt: base.AddDate(0, 0, 2)},
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

// ============================================================================
// Filter tests
// ============================================================================

func TestView_NoFiltersPassesEverything(t *testing.T) {
	got := View(testProducts(), nil, "", "")
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(got))
}

func TestView_CategoryMembership(t *testing.T) {
	got := View(testProducts(), []string{"Gamis"}, "", "")
	assert.Equal(t, []string{"p1", "p3"}, ids(got))
}

func TestView_MultipleCategories(t *testing.T) {
	got := View(testProducts(), []string{"Gamis", "Mukena"}, "", "")
	assert.Equal(t, []string{"p1", "p3", "p4"}, ids(got))
}

func TestView_UnknownCategoryMatchesNothing(t *testing.T) {
	got := View(testProducts(), []string{"Abaya"}, "", "")
	assert.Empty(t, got)
}

func TestView_QueryIsPrefixMatch(t *testing.T) {
	// "Gamis Syari" matches Gamis Syari Premium by prefix; Gamis Basic
	// contains "Gamis" but not the full prefix.
	got := View(testProducts(), nil, "Gamis Syari", "")
	assert.Equal(t, []string{"p1"}, ids(got))
}

func TestView_QueryIsCaseInsensitiveAndTrimmed(t *testing.T) {
	got := View(testProducts(), nil, "  gamis  ", "")
	assert.Equal(t, []string{"p1", "p3"}, ids(got))
}

func TestView_QueryDoesNotMatchInfix(t *testing.T) {
	got := View(testProducts(), nil, "Syari", "")
	assert.Empty(t, got)
}

func TestView_FilterThenQueryCompose(t *testing.T) {
	got := View(testProducts(), []string{"Gamis"}, "gamis b", "")
	assert.Equal(t, []string{"p3"}, ids(got))
}

// ============================================================================
// Sort tests
// ============================================================================

func TestView_SortNewest(t *testing.T) {
	got := View(testProducts(), nil, "", SortNewest)
	assert.Equal(t, []string{"p2", "p4", "p1", "p3"}, ids(got))
}

func TestView_SortNewestZeroTimeLast(t *testing.T) {
	products := testProducts()
	products[1].CreatedAt = time.Time{}

	got := View(products, nil, "", SortNewest)
	assert.Equal(t, "p2", got[len(got)-1].ID)
}

func TestView_SortPriceLow(t *testing.T) {
	got := View(testProducts(), nil, "", SortPriceLow)
	assert.Equal(t, []string{"p2", "p4", "p3", "p1"}, ids(got))
}

func TestView_SortPriceHigh(t *testing.T) {
	got := View(testProducts(), nil, "", SortPriceHigh)
	assert.Equal(t, []string{"p1", "p3", "p4", "p2"}, ids(got))
}

func TestView_SortName(t *testing.T) {
	got := View(testProducts(), nil, "", SortName)
	assert.Equal(t, []string{"p3", "p1", "p2", "p4"}, ids(got))
}

func TestView_SortNameIgnoresCase(t *testing.T) {
	products := []domain.Product{
		{ID: "a", Name: "zeta"},
		{ID: "b", Name: "Alpha"},
	}
	got := View(products, nil, "", SortName)
	assert.Equal(t, []string{"b", "a"}, ids(got))
}

func TestView_UnknownSortKeepsInputOrder(t *testing.T) {
	got := View(testProducts(), nil, "", "random")
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(got))
}

// ============================================================================
// Purity tests
// ============================================================================

func TestView_DoesNotMutateInput(t *testing.T) {
	products := testProducts()

	_ = View(products, nil, "", SortPriceLow)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(products))
}

func TestView_Deterministic(t *testing.T) {
	products := testProducts()

	first := View(products, []string{"Gamis"}, "gamis", SortPriceHigh)
	second := View(products, []string{"Gamis"}, "gamis", SortPriceHigh)
	require.Equal(t, ids(first), ids(second))
}
