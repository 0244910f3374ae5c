package model

// ResultSet maps each category to the URLs classified into it.
// Values keep insertion order, which equals processing order.
//
// Design decision: We use a plain map type rather than a struct because the
// persisted results file is exactly this mapping (category name to URL array)
// and a named map type serializes to the required shape without custom
// MarshalJSON code.
type ResultSet map[Category][]string

// NewResultSet returns a ResultSet pre-seeded with every known category
// (including CategoryOther) as an empty, non-nil slice. Pre-seeding
// guarantees that zero-match categories serialize as [] rather than being
// absent or null in the output file.
func NewResultSet() ResultSet {
	rs := make(ResultSet, len(categoryOrder))
	for _, c := range categoryOrder {
		rs[c] = []string{}
	}
	return rs
}

// Add appends a URL to the given category. Unknown categories fall back
// to CategoryOther so the mapping never grows beyond the closed set.
func (rs ResultSet) Add(category Category, url string) {
	if !category.Valid() {
		category = CategoryOther
	}
	rs[category] = append(rs[category], url)
}

// Count returns the number of URLs in the given category.
func (rs ResultSet) Count(category Category) int {
	return len(rs[category])
}

// Total returns the number of URLs across all categories.
func (rs ResultSet) Total() int {
	total := 0
	for _, urls := range rs {
		total += len(urls)
	}
	return total
}
