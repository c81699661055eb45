package pricing

import (
	"testing"

	"github.com/nadimo15/pakomi-packaging/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxSizes() []models.ProductSize {
	return []models.ProductSize{
		{
			ID: "box-15x10x5", Width: 15, Height: 10, Depth: 5, Weight: 50,
			Pricing: []models.PriceTier{
				{MinQuantity: 50, Price: 1.2},
				{MinQuantity: 200, Price: 1.0},
			},
		},
		{
			ID: "box-20x20x10", Width: 20, Height: 20, Depth: 10, Weight: 120,
			Pricing: []models.PriceTier{
				{MinQuantity: 100, Price: 2.5},
			},
		},
	}
}

func TestTierSelection(t *testing.T) {
	tests := []struct {
		quantity     int
		wantPrice    float64
		wantDiscount bool
	}{
		{49, 1.2, false}, // below every threshold: base tier fallback
		{50, 1.2, false},
		{199, 1.2, false},
		{200, 1.0, true},
		{500, 1.0, true},
	}
	for _, tt := range tests {
		quote := Calculate(15, 10, 5, tt.quantity, boxSizes())
		require.False(t, quote.IsCustomSize, "quantity %d", tt.quantity)
		require.NotNil(t, quote.PricePerItem, "quantity %d", tt.quantity)
		assert.Equal(t, tt.wantPrice, *quote.PricePerItem, "quantity %d", tt.quantity)
		assert.Equal(t, tt.wantDiscount, quote.DiscountApplied, "quantity %d", tt.quantity)
		assert.Equal(t, tt.wantPrice*float64(tt.quantity), *quote.TotalPrice, "quantity %d", tt.quantity)
	}
}

func TestUnmatchedDimensionsRequireQuote(t *testing.T) {
	quote := Calculate(99, 99, 99, 100, boxSizes())

	assert.True(t, quote.IsCustomSize)
	assert.Nil(t, quote.PricePerItem)
	assert.Nil(t, quote.TotalPrice)
	assert.Nil(t, quote.ItemWeight)
	assert.False(t, quote.DiscountApplied)
}

func TestUnsortedTiers(t *testing.T) {
	sizes := []models.ProductSize{
		{
			ID: "bag-30x40", Width: 30, Height: 40, Weight: 25,
			Pricing: []models.PriceTier{
				{MinQuantity: 500, Price: 0.6},
				{MinQuantity: 50, Price: 1.0},
				{MinQuantity: 150, Price: 0.8},
			},
		},
	}

	quote := Calculate(30, 40, 0, 160, sizes)
	require.NotNil(t, quote.PricePerItem)
	assert.Equal(t, 0.8, *quote.PricePerItem)
	assert.True(t, quote.DiscountApplied)

	quote = Calculate(30, 40, 0, 1000, sizes)
	require.NotNil(t, quote.PricePerItem)
	assert.Equal(t, 0.6, *quote.PricePerItem)
	assert.True(t, quote.DiscountApplied)
}

func TestDepthlessSizeMatchesZeroDepth(t *testing.T) {
	sizes := []models.ProductSize{
		{
			ID: "card-9x5", Width: 9, Height: 5, Weight: 3,
			Pricing: []models.PriceTier{{MinQuantity: 100, Price: 0.15}},
		},
	}

	quote := Calculate(9, 5, 0, 200, sizes)
	assert.False(t, quote.IsCustomSize)
	require.NotNil(t, quote.ItemWeight)
	assert.Equal(t, 3.0, *quote.ItemWeight)
}

func TestSingleTierNeverDiscounts(t *testing.T) {
	quote := Calculate(20, 20, 10, 5000, boxSizes())
	require.NotNil(t, quote.PricePerItem)
	assert.Equal(t, 2.5, *quote.PricePerItem)
	assert.False(t, quote.DiscountApplied)
}

func TestQuoteExample(t *testing.T) {
	// 15x10x5 box, 50g, tiers (50 -> 1.2) and (200 -> 1.0).
	quote := Calculate(15, 10, 5, 75, boxSizes())
	require.False(t, quote.IsCustomSize)
	assert.Equal(t, 1.2, *quote.PricePerItem)
	assert.Equal(t, 90.0, *quote.TotalPrice)
	assert.Equal(t, 50.0, *quote.ItemWeight)
	// Tier 50 is the base (lowest) tier of this size, so no discount.
	assert.False(t, quote.DiscountApplied)

	quote = Calculate(15, 10, 5, 250, boxSizes())
	assert.Equal(t, 1.0, *quote.PricePerItem)
	assert.True(t, quote.DiscountApplied)
}
