package normalizer

import "strings"

// DefaultCategory is used when no rule matches.
const DefaultCategory = "Technology"

type tagSet map[string]struct{}

func newTagSet(tags []string) tagSet {
	s := make(tagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}

	return s
}

func (s tagSet) hasAny(values ...string) bool {
	for _, v := range values {
		if _, ok := s[v]; ok {
			return true
		}
	}

	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}

// classificationRule assigns Category when Match returns true for the
// lowercased title and the normalized tags.
type classificationRule struct {
	Category string
	Match    func(title string, tags tagSet) bool
}

// classificationRules are evaluated in order; the first match wins.
var classificationRules = []classificationRule{
	{
		Category: "Tutorial",
		Match: func(title string, _ tagSet) bool {
			return containsAny(title, "tutorial", "how to", "guide", "getting started")
		},
	},
	{
		Category: "News",
		Match: func(title string, tags tagSet) bool {
			return tags.hasAny("announcement", "event") ||
				containsAny(title, "announcing", "introducing", "update", "new")
		},
	},
	{
		Category: "Technology",
		Match: func(_ string, tags tagSet) bool {
			return tags.hasAny("ndt", "traceroute", "bbr", "tcp-info", "tcp",
				"kernel", "performance", "network", "measurement", "protocol")
		},
	},
	{
		Category: "Development",
		Match: func(_ string, tags tagSet) bool {
			return tags.hasAny("pipeline", "bigquery", "data", "schema",
				"platform", "infrastructure", "etl")
		},
	},
	{
		Category: "Opinion",
		Match: func(_ string, tags tagSet) bool {
			return tags.hasAny("research", "community")
		},
	},
}

// Classify assigns exactly one category to an article from its title and
// normalized tags.
func Classify(title string, tags []string) string {
	lower := strings.ToLower(title)
	set := newTagSet(tags)

	for _, r := range classificationRules {
		if r.Match(lower, set) {
			return r.Category
		}
	}

	return DefaultCategory
}
