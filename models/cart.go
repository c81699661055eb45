package models

import "time"

// Socials holds the buyer's social contact handles.
type Socials struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	TikTok    string `json:"tiktok"`
	WhatsApp  string `json:"whatsapp"`
	Viber     string `json:"viber"`
}

// LogoProperties describes logo placement on the packaging preview.
// X and Y are percentages, Scale is a multiplier, Rotation is degrees.
type LogoProperties struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"`
}

// CartItem is a buyer's in-progress product configuration. UnitPrice and
// ItemWeight are frozen when the item is added to the cart; later catalog
// price changes never touch them. Mutable until checkout or removal.
type CartItem struct {
	CartItemID  string `gorm:"primaryKey" json:"cartItemId"`
	UserID      string `gorm:"index" json:"-"`
	ProductType string `gorm:"not null" json:"productType"`
	ProductName string `json:"productName"`

	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Depth    float64 `json:"depth"`
	Quantity int     `json:"quantity"`

	Color       string         `json:"color"`
	LogoURL     string         `json:"logoUrl,omitempty"`
	LogoProps   LogoProperties `gorm:"embedded;embeddedPrefix:logo_" json:"logoProps"`
	Description string         `json:"description"`

	// Buyer contact fields, stripped when the item becomes an order line.
	ClientName string  `json:"clientName"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email,omitempty"`
	Address    string  `json:"address"`
	Wilaya     string  `json:"wilaya"`
	Commune    string  `json:"commune"`
	Socials    Socials `gorm:"embedded;embeddedPrefix:social_" json:"socials"`

	UnitPrice  float64 `json:"unitPrice"`
	ItemWeight float64 `json:"itemWeight"`

	AddedAt time.Time `json:"addedAt"`
}
