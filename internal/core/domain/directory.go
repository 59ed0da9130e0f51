package domain

import "strings"

// Directory search predicates. Each call applies exactly one predicate; an
// empty query returns the full collection. Input order is preserved and no
// additional sort is applied.

// FilterByLocation returns the restaurants whose location contains q,
// case-insensitively.
func FilterByLocation(restaurants []Restaurant, q string) []Restaurant {
	return filter(restaurants, q, func(r Restaurant) string { return r.Location })
}

// FilterByCuisine returns the restaurants whose cuisine contains q,
// case-insensitively.
func FilterByCuisine(restaurants []Restaurant, q string) []Restaurant {
	return filter(restaurants, q, func(r Restaurant) string { return r.Cuisine })
}

func filter(restaurants []Restaurant, q string, field func(Restaurant) string) []Restaurant {
	if q == "" {
		return restaurants
	}
	needle := strings.ToLower(q)
	matched := make([]Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if strings.Contains(strings.ToLower(field(r)), needle) {
			matched = append(matched, r)
		}
	}
	return matched
}
