// Package schema declares the column names and types that drive CSV
// loading, and implements the all-or-nothing CSV-to-Dataset loader.
package schema

import (
	"github.com/okonkwo-labs/dqcheck/src/column"
)

// Field is one declared (name, type) pair in a Schema.
type Field struct {
	Name string       `json:"name"`
	Type column.Dtype `json:"type"`
}

// Schema is an ordered list of Fields, matched positionally against a
// CSV file's header row.
type Schema struct {
	Fields []Field `json:"fields"`
}

// New builds a Schema from its ordered fields.
func New(fields ...Field) Schema {
	return Schema{Fields: fields}
}

// Names returns the declared column names in order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}
