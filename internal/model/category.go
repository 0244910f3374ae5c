package model

// Category is a semantic bucket for archived URLs.
// The set of categories is closed; adding one requires a code change.
type Category string

// Known categories, in evaluation order. A URL that matches rules of more
// than one category belongs to the earliest declared category.
const (
	// CategoryJS marks JavaScript assets.
	CategoryJS Category = "js"

	// CategoryAPI marks API endpoints and JSON resources.
	CategoryAPI Category = "api"

	// CategoryAdmin marks administrative and authentication surfaces.
	CategoryAdmin Category = "admin"

	// CategoryRedirects marks URLs carrying redirect-style query parameters.
	CategoryRedirects Category = "redirects"

	// CategoryConfigs marks configuration and VCS artifacts.
	CategoryConfigs Category = "configs"

	// CategoryOther is the fallback for URLs matching no rule.
	CategoryOther Category = "other"
)

// categoryOrder is the single source of truth for category evaluation and
// display order. CategoryOther is last and never carries rules.
var categoryOrder = []Category{
	CategoryJS,
	CategoryAPI,
	CategoryAdmin,
	CategoryRedirects,
	CategoryConfigs,
	CategoryOther,
}

// Categories returns all known categories in declaration order,
// including the fallback CategoryOther.
// The returned slice is a copy; callers may modify it freely.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// String returns the category name.
func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range categoryOrder {
		if c == known {
			return true
		}
	}
	return false
}
