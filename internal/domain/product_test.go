package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Image list packing tests
// ============================================================================

func TestSplitImageList_Delimited(t *testing.T) {
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, SplitImageList("a.jpg|||b.jpg|||c.jpg"))
}

func TestSplitImageList_SingleEntry(t *testing.T) {
	assert.Equal(t, []string{"a.jpg"}, SplitImageList("a.jpg"))
}

func TestSplitImageList_Empty(t *testing.T) {
	assert.Empty(t, SplitImageList(""))
}

func TestSplitImageList_DropsBlankSegments(t *testing.T) {
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, SplitImageList("a.jpg||||||b.jpg"))
}

func TestJoinImageList_RoundTrip(t *testing.T) {
	packed := JoinImageList([]string{"a.jpg", "b.jpg"})
	assert.Equal(t, "a.jpg|||b.jpg", packed)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, SplitImageList(packed))
}

// ============================================================================
// Variant price tests
// ============================================================================

func TestUnitPrice_UsesBasePriceByDefault(t *testing.T) {
	v := Variant{}
	assert.Equal(t, int64(150000), v.UnitPrice(150000))
}

func TestUnitPrice_OverrideWins(t *testing.T) {
	override := int64(175000)
	v := Variant{PriceOverride: &override}
	assert.Equal(t, int64(175000), v.UnitPrice(150000))
}
