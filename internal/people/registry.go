// Package people loads the person registry: one JSON file per person, keyed
// by the file name.
package people

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"sitemig/internal/contentfs"
	"sitemig/internal/models"
)

// ErrInvalidPerson is wrapped by Problem errors for records that decode but
// fail validation.
var ErrInvalidPerson = errors.New("invalid person record")

// Problem describes a person file that is unreadable or incomplete.
type Problem struct {
	Err  error
	File string
}

// Registry is the set of known people.
type Registry struct {
	people   map[string]models.Person
	Problems []Problem
}

// NewRegistry builds a registry from people already in memory.
func NewRegistry(people ...models.Person) *Registry {
	r := &Registry{people: make(map[string]models.Person, len(people))}
	for _, p := range people {
		r.people[p.ID] = p
	}

	return r
}

// Load reads every JSON file in dir. Files that cannot be decoded are recorded
// as problems and left out. Decoded files are registered under their file
// stem even when incomplete, since other collections reference the stem.
func Load(dir string) (*Registry, error) {
	files, err := contentfs.List(dir, ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}

	r := NewRegistry()

	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			r.Problems = append(r.Problems, Problem{File: f.Name, Err: err})
			continue
		}

		var p models.Person
		if err := json.Unmarshal(data, &p); err != nil {
			r.Problems = append(r.Problems, Problem{File: f.Name, Err: err})
			continue
		}

		id := contentfs.Stem(f.Name)

		if err := Validate(p, id); err != nil {
			r.Problems = append(r.Problems, Problem{File: f.Name, Err: err})
		}

		r.people[id] = p
	}

	return r, nil
}

// Validate checks a person record whose file stem is id.
func Validate(p models.Person, id string) error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required, validation.In(id).Error("must match the file name")),
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Headshot, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Sections, validation.Each(validation.Required)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPerson, err)
	}

	return nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.people[id]
	return ok
}

// Get returns the person registered under id.
func (r *Registry) Get(id string) (models.Person, bool) {
	p, ok := r.people[id]
	return p, ok
}

// Len returns the number of registered people.
func (r *Registry) Len() int {
	return len(r.people)
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.people))
	for id := range r.people {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// All returns the registered people ordered by id. The ID field of each
// returned person is its registry key.
func (r *Registry) All() []models.Person {
	out := make([]models.Person, 0, len(r.people))

	for _, id := range r.IDs() {
		p := r.people[id]
		p.ID = id
		out = append(out, p)
	}

	return out
}
