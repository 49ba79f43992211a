// Package view is the presentation model for catalog controllers: a
// pure, I/O-free layer that normalizes raw API rows, derives display
// fields and filters controller sets. It mirrors what the web client
// renders, so anything consuming the API can share one contract.
package view

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultImageURL is used when a controller has no image.
const DefaultImageURL = "/assets/placeholder-controller.jpg"

// Platform is one normalized platform entry.
type Platform struct {
	Name               string `json:"name"`
	CompatibilityNotes string `json:"compatibility_notes"`
	RequiresAdapter    bool   `json:"requires_adapter"`
}

// Need is one normalized functional-need entry.
type Need struct {
	Name        string `json:"name"`
	Suitability string `json:"suitability"`
}

// PlatformRef accepts either a bare platform name or a detail object in
// JSON. The union is resolved here, once, at the boundary; downstream
// code only ever sees the Platform form.
type PlatformRef struct {
	Platform
}

func (r *PlatformRef) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		r.Platform = Platform{Name: name}
		return nil
	}
	return json.Unmarshal(data, &r.Platform)
}

// NeedRef accepts either a bare need name or a detail object in JSON.
type NeedRef struct {
	Need
}

func (r *NeedRef) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		r.Need = Need{Name: name}
		return nil
	}
	return json.Unmarshal(data, &r.Need)
}

// Raw is a controller row as received from the API, before
// normalization.
type Raw struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Manufacturer string        `json:"manufacturer"`
	Type         string        `json:"type"`
	Price        *float64      `json:"price"`
	ReleaseDate  *time.Time    `json:"release_date"`
	ProductURL   string        `json:"product_url"`
	ImageURL     string        `json:"image_url"`
	Platforms    []PlatformRef `json:"platforms"`
	Needs        []NeedRef     `json:"needs"`
}

// Model is the presentation-ready controller entity.
type Model struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Manufacturer string     `json:"manufacturer"`
	Type         string     `json:"type"`
	Price        float64    `json:"price"`
	ReleaseDate  *time.Time `json:"release_date"`
	ProductURL   string     `json:"product_url"`
	ImageURL     string     `json:"image_url"`
	Platforms    []Platform `json:"platforms"`
	Needs        []Need     `json:"needs"`
}

// Normalize builds a Model from a raw row, applying display defaults:
// zero price when absent, '#' product link, placeholder image, and
// entries with empty names dropped.
func Normalize(raw Raw) Model {
	m := Model{
		ID:           raw.ID,
		Name:         raw.Name,
		Manufacturer: raw.Manufacturer,
		Type:         raw.Type,
		ReleaseDate:  raw.ReleaseDate,
		ProductURL:   raw.ProductURL,
		ImageURL:     raw.ImageURL,
		Platforms:    make([]Platform, 0, len(raw.Platforms)),
		Needs:        make([]Need, 0, len(raw.Needs)),
	}

	if raw.Price != nil {
		m.Price = *raw.Price
	}
	if m.ProductURL == "" {
		m.ProductURL = "#"
	}
	if m.ImageURL == "" {
		m.ImageURL = DefaultImageURL
	}

	for _, p := range raw.Platforms {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		m.Platforms = append(m.Platforms, p.Platform)
	}
	for _, n := range raw.Needs {
		if strings.TrimSpace(n.Name) == "" {
			continue
		}
		m.Needs = append(m.Needs, n.Need)
	}

	return m
}

// PlatformNames returns the platform names in link order.
func (m Model) PlatformNames() []string {
	names := make([]string, len(m.Platforms))
	for i, p := range m.Platforms {
		names[i] = p.Name
	}
	return names
}

// PrimaryPlatform is the most recently linked platform (last entry), or
// nil for an unlinked controller.
func (m Model) PrimaryPlatform() *Platform {
	if len(m.Platforms) == 0 {
		return nil
	}
	return &m.Platforms[len(m.Platforms)-1]
}

// NativePlatforms returns the platforms usable without an adapter.
func (m Model) NativePlatforms() []Platform {
	native := make([]Platform, 0, len(m.Platforms))
	for _, p := range m.Platforms {
		if !p.RequiresAdapter {
			native = append(native, p)
		}
	}
	return native
}

// AdapterPlatforms returns the platforms that need an adapter.
func (m Model) AdapterPlatforms() []Platform {
	adapter := make([]Platform, 0, len(m.Platforms))
	for _, p := range m.Platforms {
		if p.RequiresAdapter {
			adapter = append(adapter, p)
		}
	}
	return adapter
}

// NeedNames returns the functional-need names in link order.
func (m Model) NeedNames() []string {
	names := make([]string, len(m.Needs))
	for i, n := range m.Needs {
		names[i] = n.Name
	}
	return names
}

// NeedsBySuitability filters needs by suitability level, ignoring case.
func (m Model) NeedsBySuitability(suitability string) []Need {
	matched := make([]Need, 0, len(m.Needs))
	for _, n := range m.Needs {
		if n.Suitability != "" && strings.EqualFold(n.Suitability, suitability) {
			matched = append(matched, n)
		}
	}
	return matched
}

// FriendlyNeeds maps the needs through the feature table.
func (m Model) FriendlyNeeds() []string {
	friendly := make([]string, len(m.Needs))
	for i, n := range m.Needs {
		friendly[i] = FriendlyName(n.Name)
	}
	return friendly
}

// FriendlyNeed pairs a friendly label with its suitability.
type FriendlyNeed struct {
	Friendly    string `json:"friendly"`
	Suitability string `json:"suitability"`
}

// FriendlyNeedsWithSuitability maps the needs through the feature table
// keeping their suitability levels.
func (m Model) FriendlyNeedsWithSuitability() []FriendlyNeed {
	friendly := make([]FriendlyNeed, len(m.Needs))
	for i, n := range m.Needs {
		friendly[i] = FriendlyNeed{Friendly: FriendlyName(n.Name), Suitability: n.Suitability}
	}
	return friendly
}

// FormattedPrice renders the price as pounds with two decimal places,
// or "Price N/A" when no price is set.
func (m Model) FormattedPrice() string {
	if m.Price == 0 {
		return "Price N/A"
	}
	return "£" + decimal.NewFromFloat(m.Price).StringFixed(2)
}

// FormattedReleaseDate renders the release date as "2 January 2006",
// or "N/A" when unset.
func (m Model) FormattedReleaseDate() string {
	if m.ReleaseDate == nil {
		return "N/A"
	}
	return m.ReleaseDate.Format("2 January 2006")
}

// Description builds the one-line card description.
func (m Model) Description() string {
	desc := m.Manufacturer + " " + m.Type + " controller"
	if m.ReleaseDate != nil {
		desc += " - Released " + m.FormattedReleaseDate()
	}
	return desc
}
