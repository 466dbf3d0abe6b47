package container

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Field is one name/value pair within a Record, in the order it appeared in
// the source.
type Field struct {
	Name  string
	Value any
}

// Record is one row, expressed as an ordered list of fields. Go's map type
// has no defined iteration order, so a plain map[string]any cannot carry a
// column order derived from insertion order in the first record; Record
// carries it explicitly instead.
type Record []Field

// Get returns the value of field name within the record, and whether it was
// present.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}

	return nil, false
}

// RecordFromMap builds a Record from a map using the given field order. It
// is a convenience for callers that already have field order decided (e.g.
// a fixed struct shape) and don't need DecodeRecordsJSON's key-order
// tracking.
func RecordFromMap(fields []string, values map[string]any) Record {
	rec := make(Record, 0, len(fields))
	for _, f := range fields {
		if v, ok := values[f]; ok {
			rec = append(rec, Field{Name: f, Value: v})
		}
	}

	return rec
}

// DecodeRecordsJSON parses a JSON array of objects into an ordered Record
// sequence, preserving each object's key order exactly as written by
// walking encoding/json's streaming Decoder one Token() at a time. Numbers
// decode as json.Number so typeinfer sees exact decimal text.
func DecodeRecordsJSON(data []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	var records []Record
	for dec.More() {
		rec, err := decodeRecordObject(dec)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}

	return records, nil
}

func decodeRecordObject(dec *json.Decoder) (Record, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var rec Record
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("jonx: reading field name: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("jonx: expected field name, got %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("jonx: decoding field %q: %w", key, err)
		}

		rec = append(rec, Field{Name: key, Value: value})
	}

	return rec, expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err == io.EOF {
		return fmt.Errorf("jonx: unexpected end of JSON input, wanted %q", want)
	}
	if err != nil {
		return fmt.Errorf("jonx: %w", err)
	}

	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("jonx: expected %q, got %v", want, tok)
	}

	return nil
}
