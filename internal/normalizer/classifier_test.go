package normalizer

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		tags  []string
		want  string
	}{
		{"tutorial by title", "How to run NDT", []string{"ndt"}, "Tutorial"},
		{"tutorial beats news", "Getting Started guide: announcing v2", []string{"announcement"}, "Tutorial"},
		{"news by tag", "Quarterly recap", []string{"event"}, "News"},
		{"news by title", "Introducing the data portal", nil, "News"},
		{"news substring", "Renewed funding", nil, "News"},
		{"technology by tag", "BBR results", []string{"bbr"}, "Technology"},
		{"technology beats development", "Looking at results", []string{"data", "tcp"}, "Technology"},
		{"development by tag", "Pipeline status", []string{"bigquery"}, "Development"},
		{"opinion by tag", "Why we measure", []string{"community"}, "Opinion"},
		{"default", "Reflections", []string{"misc"}, DefaultCategory},
		{"tags are exact", "Reflections", []string{"networking"}, DefaultCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.title, tt.tags); got != tt.want {
				t.Errorf("Classify(%q, %v) = %q, want %q", tt.title, tt.tags, got, tt.want)
			}
		})
	}
}

func TestClassificationRules_Independent(t *testing.T) {
	for _, r := range classificationRules {
		if r.Match == nil {
			t.Errorf("rule %q has no predicate", r.Category)
		}
	}

	if !classificationRules[0].Match("a tutorial", nil) {
		t.Error("tutorial rule should match on title alone")
	}

	if classificationRules[4].Match("anything", newTagSet([]string{"data"})) {
		t.Error("opinion rule should not match data tag")
	}
}
