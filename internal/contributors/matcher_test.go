package contributors

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"sitemig/internal/models"
)

func testPeople() []models.Person {
	return []models.Person{
		{ID: "matt-mathis", Name: "Matt Mathis"},
		{ID: "chris-ritzo", Name: "Chris Ritzo"},
		{ID: "ann-smith", Name: "Ann Smith"},
		{ID: "bob-smith", Name: "Bob Smith"},
		{ID: "lai-yi-ohlsen", Name: "Lai Yi Ohlsen"},
		{ID: "nameless", Name: "  "},
	}
}

func TestParseAuthors(t *testing.T) {
	got := ParseAuthors("Matt Mathis, Chris Ritzo; Ann Smith and Bob Smith, Alexandra Brand")
	want := []string{"Matt Mathis", "Chris Ritzo", "Ann Smith", "Bob Smith", "Alexandra Brand"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseAuthors mismatch (-want +got):\n%s", diff)
	}

	if ParseAuthors("") != nil {
		t.Error("ParseAuthors(\"\") should be nil")
	}
}

func TestMatcher_Match(t *testing.T) {
	m := NewMatcher(testPeople())

	tests := []struct {
		author string
		wantID string
		rule   string
	}{
		{"Matt Mathis", "matt-mathis", RuleExact},
		{"  MATT MATHIS ", "matt-mathis", RuleExact},
		{"M. Mathis", "matt-mathis", RuleInitialSurname},
		{"M.Mathis", "matt-mathis", RuleInitialSurname},
		{"Ritzo, C.", "chris-ritzo", RuleSurnameInitial},
		{"Ritzo", "chris-ritzo", RuleUniqueSurname},
		{"A. Smith", "ann-smith", RuleInitialSurname},
		{"Ohlsen", "lai-yi-ohlsen", RuleUniqueSurname},
	}

	for _, tt := range tests {
		t.Run(tt.author, func(t *testing.T) {
			res, ok := m.Match(tt.author)
			if !ok {
				t.Fatalf("Match(%q) found nothing", tt.author)
			}

			if res.ID != tt.wantID || res.Rule != tt.rule {
				t.Errorf("Match(%q) = %s via %s, want %s via %s", tt.author, res.ID, res.Rule, tt.wantID, tt.rule)
			}
		})
	}
}

func TestMatcher_NoMatch(t *testing.T) {
	m := NewMatcher(testPeople())

	for _, author := range []string{"Smith", "C. Mathis", "Unknown Person", "", "Yi"} {
		if res, ok := m.Match(author); ok {
			t.Errorf("Match(%q) = %s, want no match", author, res.ID)
		}
	}
}
