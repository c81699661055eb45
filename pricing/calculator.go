// Package pricing resolves tiered quantity pricing for catalog sizes.
package pricing

import (
	"sort"

	"github.com/nadimo15/pakomi-packaging/models"
)

// Quote is the result of a price calculation. When the requested
// dimensions match no catalog size, IsCustomSize is true and the price
// and weight fields are nil: the configuration requires manual quotation.
// That is a sentinel result, not an error, and callers must not retry.
type Quote struct {
	PricePerItem    *float64 `json:"pricePerItem"`
	TotalPrice      *float64 `json:"totalPrice"`
	ItemWeight      *float64 `json:"itemWeight"`
	DiscountApplied bool     `json:"discountApplied"`
	IsCustomSize    bool     `json:"isCustomSize"`
}

// Calculate finds the catalog size exactly matching the requested
// dimensions and resolves the applicable price tier for the quantity.
//
// Tiers may be stored in any order; they are sorted by MinQuantity
// descending and the first tier the quantity qualifies for wins. A
// quantity below every threshold falls back to the base tier (smallest
// MinQuantity), so a matched size always yields a price. Callers must
// enforce quantity >= 1 before calling.
func Calculate(width, height, depth float64, quantity int, sizes []models.ProductSize) Quote {
	matched, ok := matchSize(width, height, depth, sizes)
	if !ok {
		return Quote{IsCustomSize: true}
	}

	tiers := append([]models.PriceTier{}, matched.Pricing...)
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].MinQuantity > tiers[j].MinQuantity
	})
	if len(tiers) == 0 {
		// Catalog invariant violated; treat like an unmatched size.
		return Quote{IsCustomSize: true}
	}

	selected := len(tiers) - 1 // base tier fallback
	for i, tier := range tiers {
		if quantity >= tier.MinQuantity {
			selected = i
			break
		}
	}

	pricePerItem := tiers[selected].Price
	totalPrice := pricePerItem * float64(quantity)
	itemWeight := matched.Weight

	return Quote{
		PricePerItem:    &pricePerItem,
		TotalPrice:      &totalPrice,
		ItemWeight:      &itemWeight,
		DiscountApplied: selected != len(tiers)-1,
	}
}

// matchSize requires exact equality on the stored catalog values; sizes
// come from the same catalog, so no tolerance band is applied. A size
// without a depth matches requests with depth 0.
func matchSize(width, height, depth float64, sizes []models.ProductSize) (models.ProductSize, bool) {
	for _, size := range sizes {
		if size.Width == width && size.Height == height && size.Depth == depth {
			return size, true
		}
	}
	return models.ProductSize{}, false
}
