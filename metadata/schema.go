package metadata

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaResource = "metadata.schema.json"

// Schema is a compiled JSON Schema that flattened metadata is checked against. Because metadata is
// flat, the schema describes a single object whose property names are dotted paths and whose
// values are strings.
type Schema struct {
	schema *jsonschema.Schema
}

// CompileSchema compiles the JSON Schema document in data.
func CompileSchema(data []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaResource, bytes.NewReader(data)); err != nil {
		return nil, errors.WithMessage(err, "add metadata schema")
	}
	s, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, errors.WithMessage(err, "compile metadata schema")
	}
	return &Schema{schema: s}, nil
}

// Validate checks m against the schema. It returns one validation error per failing leaf of the
// schema, or nil if m is valid.
func (s *Schema) Validate(m Metadata) []*Error {
	if s == nil {
		return nil
	}
	doc := make(map[string]interface{}, len(m))
	for k, v := range m {
		doc[k] = v
	}
	err := s.schema.Validate(doc)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []*Error{ValidationError("#", err.Error())}
	}

	var problems []*Error
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			problems = append(problems, ValidationError(fieldFromLocation(node.InstanceLocation), strings.TrimSpace(node.Message)))
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(verr)
	return problems
}

// fieldFromLocation turns a JSON pointer such as "/og:title" into the metadata key it refers to.
// JSON pointer escapes are undone ("~1" is "/", "~0" is "~").
func fieldFromLocation(loc string) string {
	loc = strings.TrimPrefix(strings.TrimSpace(loc), "/")
	if loc == "" {
		return "#"
	}
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(loc)
}
