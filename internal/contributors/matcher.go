// Package contributors links the free-text authors of publications to people
// in the registry.
package contributors

import (
	"regexp"
	"strings"

	"sitemig/internal/models"
)

// Rule names, in evaluation order.
const (
	RuleExact          = "exact"
	RuleInitialSurname = "initial-surname"
	RuleSurnameInitial = "surname-initial"
	RuleUniqueSurname  = "unique-surname"
)

var (
	authorSeparators = regexp.MustCompile(`,|;|\band\b`)
	initialSurname   = regexp.MustCompile(`^([a-z])\.\s*([a-z\s-]+)$`)
	surnameInitial   = regexp.MustCompile(`^([a-z\s-]+),\s*([a-z])\.?$`)
)

// personKey holds the lookup keys of one person.
type personKey struct {
	id           string
	name         string
	fullName     string
	lastName     string
	firstInitial string
}

func newPersonKey(p models.Person) (personKey, bool) {
	words := strings.Fields(p.Name)
	if len(words) == 0 {
		return personKey{}, false
	}

	return personKey{
		id:           p.ID,
		name:         p.Name,
		fullName:     strings.ToLower(p.Name),
		lastName:     strings.ToLower(words[len(words)-1]),
		firstInitial: string([]rune(strings.ToLower(words[0]))[:1]),
	}, true
}

// matchRule resolves a lowercased author name to a person, if it can.
type matchRule struct {
	name  string
	match func(people []personKey, name string) (personKey, bool)
}

var matchRules = []matchRule{
	{RuleExact, func(people []personKey, name string) (personKey, bool) {
		for _, p := range people {
			if p.fullName == name {
				return p, true
			}
		}

		return personKey{}, false
	}},
	{RuleInitialSurname, func(people []personKey, name string) (personKey, bool) {
		m := initialSurname.FindStringSubmatch(name)
		if m == nil {
			return personKey{}, false
		}

		return byInitialAndSurname(people, m[1], m[2])
	}},
	{RuleSurnameInitial, func(people []personKey, name string) (personKey, bool) {
		m := surnameInitial.FindStringSubmatch(name)
		if m == nil {
			return personKey{}, false
		}

		return byInitialAndSurname(people, m[2], m[1])
	}},
	{RuleUniqueSurname, func(people []personKey, name string) (personKey, bool) {
		var found []personKey

		for _, p := range people {
			if p.lastName == name {
				found = append(found, p)
			}
		}

		if len(found) != 1 {
			return personKey{}, false
		}

		return found[0], true
	}},
}

func byInitialAndSurname(people []personKey, initial, surname string) (personKey, bool) {
	surname = strings.TrimSpace(surname)

	for _, p := range people {
		if p.firstInitial == initial && p.lastName == surname {
			return p, true
		}
	}

	return personKey{}, false
}

// Matcher resolves author names against a fixed set of people.
type Matcher struct {
	people []personKey
}

// NewMatcher indexes people. People without a name are ignored.
func NewMatcher(people []models.Person) *Matcher {
	m := &Matcher{}

	for _, p := range people {
		if key, ok := newPersonKey(p); ok {
			m.people = append(m.people, key)
		}
	}

	return m
}

// ParseAuthors splits an authors field on commas, semicolons and the word "and".
func ParseAuthors(authors string) []string {
	var out []string

	for _, part := range authorSeparators.Split(authors, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

// Resolution is a successful match of one author name.
type Resolution struct {
	ID   string
	Name string
	Rule string
}

// Match resolves one author name. The first rule that matches wins.
func (m *Matcher) Match(author string) (Resolution, bool) {
	name := strings.ToLower(strings.TrimSpace(author))

	for _, r := range matchRules {
		if p, ok := r.match(m.people, name); ok {
			return Resolution{ID: p.id, Name: p.name, Rule: r.name}, true
		}
	}

	return Resolution{}, false
}
