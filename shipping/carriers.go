// Package shipping handles the carrier handoff for shipped orders.
package shipping

import "strings"

// APIConfig is the integration endpoint set for an automated carrier.
type APIConfig struct {
	CreateShipmentURL string
	TrackShipmentURL  string
	APIKey            string
}

// Carrier is a delivery company. Carriers without an APIConfig require a
// human-entered tracking number before an order may be marked shipped.
type Carrier struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	API  *APIConfig `json:"-"`
}

// Integrated reports whether shipments can be created through the
// carrier's API instead of manual tracking entry.
func (c Carrier) Integrated() bool {
	return c.API != nil
}

var carriers = []Carrier{
	{
		ID:   "zr-express",
		Name: "ZR Express",
		API: &APIConfig{
			CreateShipmentURL: "https://api.zrexpress.com/create",
			TrackShipmentURL:  "https://api.zrexpress.com/track",
			APIKey:            "ZR-API-KEY-PLACEHOLDER",
		},
	},
	{ID: "yalidine", Name: "Yalidine"},
	{ID: "nord-et-ouest", Name: "Nord et Ouest"},
}

// Carriers lists the configured delivery companies.
func Carriers() []Carrier {
	out := make([]Carrier, len(carriers))
	copy(out, carriers)
	return out
}

// FindCarrier looks a carrier up by id or display name.
func FindCarrier(idOrName string) (Carrier, bool) {
	for _, c := range carriers {
		if strings.EqualFold(idOrName, c.ID) || strings.EqualFold(idOrName, c.Name) {
			return c, true
		}
	}
	return Carrier{}, false
}
