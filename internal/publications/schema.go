package publications

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"sitemig/internal/models"
)

// Schema errors.
var (
	ErrSchemaInvalid    = errors.New("publication schema invalid")
	ErrSchemaValidation = errors.New("publication does not match schema")
)

//go:embed publication.schema.json
var schemaJSON []byte

const schemaResource = "publication.schema.json"

// SchemaValidator checks publication records against the collection schema.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

// NewSchemaValidator compiles the embedded publication schema.
func NewSchemaValidator() (*SchemaValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(schemaResource, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}

	schema, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}

	return &SchemaValidator{schema: schema}, nil
}

// Validate checks pub in its stored JSON form.
func (v *SchemaValidator) Validate(pub models.Publication) error {
	data, err := json.Marshal(pub)
	if err != nil {
		return fmt.Errorf("failed to marshal publication %s: %w", pub.ID, err)
	}

	return v.ValidateJSON(data)
}

// ValidateJSON checks an encoded publication record.
func (v *SchemaValidator) ValidateJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s", ErrSchemaValidation, strings.Join(issues(err), "; "))
	}

	return nil
}

// issues flattens a validation error into leaf messages.
func issues(err error) []string {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []string{err.Error()}
	}

	var out []string

	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			loc := node.InstanceLocation
			if loc == "" {
				loc = "/"
			}

			out = append(out, loc+": "+node.Message)

			return
		}

		for _, c := range node.Causes {
			walk(c)
		}
	}
	walk(verr)

	return out
}
