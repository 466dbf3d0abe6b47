// Package schema implements the ordered field list, type map, and row count
// describing a JONX file's columns, serialized as a JSON
// `schema_plaintext` object.
//
// JSON (de)serialization plays the role of a fixed metadata block that
// precedes the data and that the reader parses before touching any column.
// See DESIGN.md.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/jonxfmt/jonx/errs"
	"github.com/jonxfmt/jonx/format"
)

// Schema is the ordered field list plus field->PhysicalType map plus row
// count.
type Schema struct {
	Fields  []string
	Types   map[string]format.PhysicalType
	NumRows uint32
}

// New builds a Schema from an ordered field list and type map, validating
// structural consistency.
func New(fields []string, types map[string]format.PhysicalType, numRows uint32) (*Schema, error) {
	s := &Schema{Fields: fields, Types: types, NumRows: numRows}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks structural consistency: every declared field has a valid
// type tag, and there are no duplicate field names.
func (s *Schema) Validate() error {
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if _, dup := seen[f]; dup {
			return fmt.Errorf("%w: duplicate field %q", errs.ErrSchemaMalformed, f)
		}
		seen[f] = struct{}{}

		typ, ok := s.Types[f]
		if !ok {
			return fmt.Errorf("%w: field %q has no declared type", errs.ErrSchemaMalformed, f)
		}
		if typ.String() == "unknown" {
			return fmt.Errorf("%w: field %q has unrecognized type tag", errs.ErrSchemaMalformed, f)
		}
	}

	if len(s.Types) != len(s.Fields) {
		return fmt.Errorf("%w: types map has entries for fields not in the schema", errs.ErrSchemaMalformed)
	}

	return nil
}

// HasField reports whether name is a declared field.
func (s *Schema) HasField(name string) bool {
	_, ok := s.Types[name]

	return ok
}

// FieldIndex returns the schema-order position of name, or -1 if absent.
func (s *Schema) FieldIndex(name string) int {
	for i, f := range s.Fields {
		if f == name {
			return i
		}
	}

	return -1
}

type wireSchema struct {
	Fields  []string          `json:"fields"`
	Types   map[string]string `json:"types"`
	NumRows uint32            `json:"num_rows"`
}

// MarshalJSON serializes the schema as
// {"fields": [...], "types": {...}, "num_rows": N}.
func (s *Schema) MarshalJSON() ([]byte, error) {
	wire := wireSchema{
		Fields:  s.Fields,
		Types:   make(map[string]string, len(s.Types)),
		NumRows: s.NumRows,
	}
	for name, typ := range s.Types {
		wire.Types[name] = typ.String()
	}

	return json.Marshal(wire)
}

// UnmarshalJSON parses a schema frame's plaintext, rejecting unknown type
// tags, duplicate fields, or fields missing a type.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var wire wireSchema
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrSchemaMalformed, err)
	}

	types := make(map[string]format.PhysicalType, len(wire.Types))
	for name, tag := range wire.Types {
		typ, ok := format.ParsePhysicalType(tag)
		if !ok {
			return fmt.Errorf("%w: field %q has unrecognized type tag %q", errs.ErrSchemaMalformed, name, tag)
		}
		types[name] = typ
	}

	parsed := &Schema{Fields: wire.Fields, Types: types, NumRows: wire.NumRows}
	if err := parsed.Validate(); err != nil {
		return err
	}

	*s = *parsed

	return nil
}
