package models

import "time"

// PriceTier means: if the ordered quantity is at least MinQuantity,
// the unit price is Price. Tiers are stored in no particular order.
type PriceTier struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"-"`
	ProductSizeID string  `gorm:"index" json:"-"`
	MinQuantity   int     `gorm:"not null" json:"minQuantity"`
	Price         float64 `gorm:"not null" json:"price"`
}

// ProductSize is one catalog dimension combination with its own weight
// and quantity price tiers. Weight is in grams.
type ProductSize struct {
	ID        string      `gorm:"primaryKey" json:"id"`
	ProductID string      `gorm:"index" json:"-"`
	Width     float64     `gorm:"not null" json:"width"`
	Height    float64     `gorm:"not null" json:"height"`
	Depth     float64     `json:"depth,omitempty"`
	Weight    float64     `gorm:"not null" json:"weight"`
	Pricing   []PriceTier `gorm:"foreignKey:ProductSizeID;constraint:OnDelete:CASCADE" json:"pricing"`
}

type ProductColor struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	ProductID string `gorm:"index" json:"-"`
	Name      string `json:"name"`
	Value     string `json:"value"`
}

// Product is a packaging product type, e.g. "cartonBox" or "paperBag".
// The ID doubles as the product type key used by cart items and orders.
type Product struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Colors    []ProductColor `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"availableColors"`
	Sizes     []ProductSize  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
