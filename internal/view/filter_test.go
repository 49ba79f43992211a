package view

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func filterFixture() []Model {
	return []Model{
		{
			ID: "a", Name: "Adaptive Pro", Price: 50,
			Platforms: []Platform{{Name: "PC"}, {Name: "Xbox", RequiresAdapter: true}},
			Needs:     []Need{{Name: "Weak Grip", Suitability: "High"}},
		},
		{
			ID: "b", Name: "Grip Assist", Price: 10,
			Platforms: []Platform{{Name: "PlayStation"}},
			Needs:     []Need{{Name: "Single-Handed Use", Suitability: "Medium"}},
		},
		{
			ID: "c", Name: "Mount Rig", Price: 120,
			Platforms: []Platform{{Name: "Xbox", RequiresAdapter: true}},
			Needs:     []Need{{Name: "Controller Mounting Needed", Suitability: "High"}},
		},
	}
}

func ids(models []Model) []string {
	out := make([]string, len(models))
	for i, m := range models {
		out[i] = m.ID
	}
	return out
}

func TestApplyFiltersZeroValueSelectsEverything(t *testing.T) {
	models := filterFixture()
	result := ApplyFilters(models, FilterState{})
	require.Equal(t, []string{"a", "b", "c"}, ids(result), "relevance keeps insertion order")
}

func TestApplyFiltersPlatformOr(t *testing.T) {
	result := ApplyFilters(filterFixture(), FilterState{Platforms: []string{"PC", "PlayStation"}})
	require.Equal(t, []string{"a", "b"}, ids(result))
}

func TestApplyFiltersAdapterModes(t *testing.T) {
	models := filterFixture()

	native := ApplyFilters(models, FilterState{Adapter: AdapterNativeOnly})
	require.Equal(t, []string{"a", "b"}, ids(native))

	adapter := ApplyFilters(models, FilterState{Adapter: AdapterAdapterOnly})
	require.Equal(t, []string{"a", "c"}, ids(adapter))

	all := ApplyFilters(models, FilterState{Adapter: AdapterAll})
	require.Len(t, all, 3)
}

func TestApplyFiltersFeatureOr(t *testing.T) {
	// Features match on friendly names, not internal need names.
	result := ApplyFilters(filterFixture(), FilterState{Features: []string{"Low Grip Required", "Mountable"}})
	require.Equal(t, []string{"a", "c"}, ids(result))

	none := ApplyFilters(filterFixture(), FilterState{Features: []string{"Weak Grip"}})
	require.Empty(t, none)
}

func TestApplyFiltersSort(t *testing.T) {
	low := ApplyFilters(filterFixture(), FilterState{Sort: SortPriceLow})
	require.Equal(t, []string{"b", "a", "c"}, ids(low))

	high := ApplyFilters(filterFixture(), FilterState{Sort: SortPriceHigh})
	require.Equal(t, []string{"c", "a", "b"}, ids(high))
}

func TestApplyFiltersDoesNotMutateInput(t *testing.T) {
	models := filterFixture()
	_ = ApplyFilters(models, FilterState{Sort: SortPriceLow, Platforms: []string{"Xbox"}})
	require.Equal(t, []string{"a", "b", "c"}, ids(models))
}

func TestApplyFiltersCombined(t *testing.T) {
	result := ApplyFilters(filterFixture(), FilterState{
		Platforms: []string{"Xbox"},
		Adapter:   AdapterAdapterOnly,
		Features:  []string{"Low Grip Required", "Mountable"},
		Sort:      SortPriceLow,
	})
	require.Equal(t, []string{"a", "c"}, ids(result))
}
