package classifier

import (
	"regexp"

	"github.com/waybackcrawl/waybackcrawl/internal/model"
)

// rule is one category with its compiled patterns.
type rule struct {
	category model.Category
	patterns []*regexp.Regexp
}

// RuleTable is an ordered mapping from category to regex patterns.
// Order matters: a URL matching rules of several categories is assigned
// to the earliest declared one. The table is immutable after construction
// and safe for concurrent use.
type RuleTable struct {
	rules []rule
}

// defaultPatterns holds the rule sources per category, in evaluation order.
// Patterns are searched case-insensitively and unanchored, so a match
// anywhere in the URL counts. These sources must stay byte-identical to the
// reference table: downstream tooling depends on the resulting bucketing.
var defaultPatterns = []struct {
	category model.Category
	sources  []string
}{
	{model.CategoryJS, []string{`\.js(\?|$)`, `application/javascript`}},
	{model.CategoryAPI, []string{`/api/v[0-9]/`, `graphql`, `\.json(\?|$)`}},
	{model.CategoryAdmin, []string{`admin`, `dashboard`, `login`, `wp-admin`}},
	{model.CategoryRedirects, []string{`url=`, `next=`, `redirect=`}},
	{model.CategoryConfigs, []string{`\.env`, `config\.`, `\.git/`}},
}

// DefaultRuleTable returns the built-in rule table with all patterns
// compiled. It panics on a malformed pattern, which can only happen if
// the hard-coded sources above are edited incorrectly.
func DefaultRuleTable() *RuleTable {
	t := &RuleTable{rules: make([]rule, 0, len(defaultPatterns))}
	for _, entry := range defaultPatterns {
		r := rule{
			category: entry.category,
			patterns: make([]*regexp.Regexp, 0, len(entry.sources)),
		}
		for _, src := range entry.sources {
			r.patterns = append(r.patterns, regexp.MustCompile(`(?i)`+src))
		}
		t.rules = append(t.rules, r)
	}
	return t
}

// Classify returns the category of a single URL: the first category in
// table order for which any pattern matches, or CategoryOther when none do.
//
// Classify reads no mutable state and is safe to call from many goroutines.
func (t *RuleTable) Classify(rawURL string) model.Category {
	for _, r := range t.rules {
		for _, p := range r.patterns {
			if p.MatchString(rawURL) {
				return r.category
			}
		}
	}
	return model.CategoryOther
}

// Categories returns the categories carrying rules, in evaluation order.
// CategoryOther is not included because it has no patterns.
func (t *RuleTable) Categories() []model.Category {
	out := make([]model.Category, 0, len(t.rules))
	for _, r := range t.rules {
		out = append(out, r.category)
	}
	return out
}
