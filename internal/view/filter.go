package view

import "sort"

// Adapter filter modes.
const (
	AdapterAll         = "all"
	AdapterNativeOnly  = "native-only"
	AdapterAdapterOnly = "adapter-only"
)

// Sort orders.
const (
	SortRelevance = "relevance"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// FilterState is an immutable description of the active filters. The
// zero value selects everything in insertion order.
type FilterState struct {
	// Platforms keeps controllers linked to any of the named platforms.
	Platforms []string
	// Adapter is one of AdapterAll, AdapterNativeOnly, AdapterAdapterOnly.
	Adapter string
	// Features keeps controllers whose friendly feature names include
	// any of the named features.
	Features []string
	// Sort is one of SortRelevance, SortPriceLow, SortPriceHigh.
	Sort string
}

// Matches reports whether a single controller passes the filter.
func (s FilterState) Matches(m Model) bool {
	if len(s.Platforms) > 0 && !containsAny(m.PlatformNames(), s.Platforms) {
		return false
	}

	switch s.Adapter {
	case AdapterNativeOnly:
		if len(m.NativePlatforms()) == 0 {
			return false
		}
	case AdapterAdapterOnly:
		if len(m.AdapterPlatforms()) == 0 {
			return false
		}
	}

	if len(s.Features) > 0 && !containsAny(m.FriendlyNeeds(), s.Features) {
		return false
	}

	return true
}

// ApplyFilters returns the controllers passing the filter, ordered per
// the sort mode. Pure: the input slice is never mutated.
func ApplyFilters(controllers []Model, state FilterState) []Model {
	filtered := make([]Model, 0, len(controllers))
	for _, m := range controllers {
		if state.Matches(m) {
			filtered = append(filtered, m)
		}
	}

	switch state.Sort {
	case SortPriceLow:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price < filtered[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price > filtered[j].Price
		})
	}

	return filtered
}

func containsAny(haystack, wanted []string) bool {
	for _, h := range haystack {
		for _, w := range wanted {
			if h == w {
				return true
			}
		}
	}
	return false
}
