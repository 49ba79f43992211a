package view

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeAcceptsMixedPlatformShapes(t *testing.T) {
	payload := `{
		"id": "c1",
		"name": "Adaptive Pro",
		"manufacturer": "AccessCo",
		"type": "Gamepad",
		"price": 59.99,
		"platforms": [
			"PC",
			{"name": "Xbox", "compatibility_notes": "Needs hub", "requires_adapter": true}
		],
		"needs": [
			"Weak Grip",
			{"name": "Large Buttons Needed", "suitability": "Medium"}
		]
	}`

	var raw Raw
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	m := Normalize(raw)

	require.Equal(t, []string{"PC", "Xbox"}, m.PlatformNames())
	require.False(t, m.Platforms[0].RequiresAdapter)
	require.True(t, m.Platforms[1].RequiresAdapter)
	require.Equal(t, "Needs hub", m.Platforms[1].CompatibilityNotes)

	require.Equal(t, []string{"Weak Grip", "Large Buttons Needed"}, m.NeedNames())
	require.Equal(t, "", m.Needs[0].Suitability)
	require.Equal(t, "Medium", m.Needs[1].Suitability)
}

func TestNormalizeDefaults(t *testing.T) {
	m := Normalize(Raw{
		ID:   "c1",
		Name: "Bare",
		Platforms: []PlatformRef{
			{Platform{Name: "  "}},
			{Platform{Name: "PC"}},
		},
	})

	require.Equal(t, 0.0, m.Price)
	require.Equal(t, "#", m.ProductURL)
	require.Equal(t, DefaultImageURL, m.ImageURL)
	require.Equal(t, []string{"PC"}, m.PlatformNames(), "blank-name entries are dropped")
	require.NotNil(t, m.Needs)
	require.Empty(t, m.Needs)
}

func TestFriendlyNeeds(t *testing.T) {
	require.Equal(t, "Low Grip Required", FriendlyName("Weak Grip"))
	require.Equal(t, "One-Handed", FriendlyName("Single-Handed Use"))
	require.Equal(t, "Custom Need", FriendlyName("Custom Need"), "unmapped names pass through")

	m := Model{Needs: []Need{
		{Name: "Weak Grip", Suitability: "High"},
		{Name: "Quick Fatigue", Suitability: "Low"},
	}}
	require.Equal(t, []string{"Low Grip Required", "Low Force"}, m.FriendlyNeeds())

	withSuitability := m.FriendlyNeedsWithSuitability()
	require.Equal(t, FriendlyNeed{Friendly: "Low Grip Required", Suitability: "High"}, withSuitability[0])
}

func TestNeedsBySuitability(t *testing.T) {
	m := Model{Needs: []Need{
		{Name: "Weak Grip", Suitability: "High"},
		{Name: "Quick Fatigue", Suitability: "high"},
		{Name: "Limited Reach", Suitability: "Medium"},
		{Name: "Head/Mouth Control"},
	}}

	high := m.NeedsBySuitability("HIGH")
	require.Len(t, high, 2)
	require.Equal(t, "Weak Grip", high[0].Name)
}

func TestFormattedPrice(t *testing.T) {
	require.Equal(t, "Price N/A", Model{}.FormattedPrice())
	require.Equal(t, "£59.99", Model{Price: 59.99}.FormattedPrice())
	require.Equal(t, "£10.00", Model{Price: 10}.FormattedPrice())
	require.Equal(t, "£0.10", Model{Price: 0.1}.FormattedPrice())
}

func TestFormattedReleaseDate(t *testing.T) {
	require.Equal(t, "N/A", Model{}.FormattedReleaseDate())

	date := time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC)
	m := Model{ReleaseDate: &date}
	require.Equal(t, "5 March 2023", m.FormattedReleaseDate())
	require.Contains(t, Model{Manufacturer: "AccessCo", Type: "Gamepad", ReleaseDate: &date}.Description(), "Released 5 March 2023")
}

func TestPrimaryPlatform(t *testing.T) {
	require.Nil(t, Model{}.PrimaryPlatform())

	m := Model{Platforms: []Platform{{Name: "PC"}, {Name: "Xbox"}}}
	primary := m.PrimaryPlatform()
	require.NotNil(t, primary)
	require.Equal(t, "Xbox", primary.Name, "most recently linked platform wins")
}

func TestNativeAndAdapterPlatforms(t *testing.T) {
	m := Model{Platforms: []Platform{
		{Name: "PC"},
		{Name: "Xbox", RequiresAdapter: true},
		{Name: "PlayStation"},
	}}

	native := m.NativePlatforms()
	require.Len(t, native, 2)
	require.Equal(t, "PC", native[0].Name)

	adapter := m.AdapterPlatforms()
	require.Len(t, adapter, 1)
	require.Equal(t, "Xbox", adapter[0].Name)
}
