package models

import (
	"regexp"

	"gopkg.in/yaml.v3"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date is a calendar date in YYYY-MM-DD form. It marshals to an unquoted YAML
// timestamp so content tooling reads it as a date literal, not a string.
type Date string

// Valid reports whether d is exactly YYYY-MM-DD.
func (d Date) Valid() bool {
	return datePattern.MatchString(string(d))
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!timestamp",
		Value: string(d),
	}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	*d = Date(node.Value)
	return nil
}
