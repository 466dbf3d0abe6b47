// Package jonx provides a columnar, compressed binary container format for
// homogeneous JSON-record data.
//
// JONX converts a sequence of JSON-like records (rows sharing a common
// field set) into a compact file: each column is type-narrowed to the
// smallest physical representation that holds its values (int16/int32,
// float16/float32, bool, str, or json), stored as its own compressed
// frame, with an argsort index over every numeric column for O(1)
// find_min/find_max.
//
// # Basic Usage
//
// Encoding a record sequence:
//
//	import "github.com/jonxfmt/jonx"
//
//	records, _ := container.DecodeRecordsJSON([]byte(`[{"id":1,"name":"Alice"},{"id":2,"name":"Bob"}]`))
//	data, err := jonx.EncodeRecords(records)
//
// Reading it back:
//
//	reader, err := jonx.Open(data)
//	minID, err := reader.FindMin("id", true)
//	col, err := reader.GetColumn("name")
//
// # Package Structure
//
// This package is a thin convenience layer over package container, which
// holds the Writer/Reader implementation. For fine-grained control
// (custom compression checksum behavior, batched column access, schema
// inspection) use package container directly.
package jonx

import (
	"os"

	"github.com/jonxfmt/jonx/container"
)

// EncodeRecords encodes a record sequence into a complete JONX byte
// stream, using default writer options.
func EncodeRecords(records []container.Record, opts ...container.WriterOption) ([]byte, error) {
	w, err := container.NewWriter(opts...)
	if err != nil {
		return nil, err
	}

	return w.Write(records)
}

// EncodeFile reads a JSON array of records from srcPath and writes the
// encoded JONX container to dstPath. A thin wrapper around EncodeRecords,
// kept here only as the thinnest possible path-to-path convenience.
func EncodeFile(srcPath, dstPath string, opts ...container.WriterOption) error {
	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	records, err := container.DecodeRecordsJSON(raw)
	if err != nil {
		return err
	}

	data, err := EncodeRecords(records, opts...)
	if err != nil {
		return err
	}

	return os.WriteFile(dstPath, data, 0o644) //nolint:gosec
}

// DecodeBytes fully materializes a JONX byte stream: schema, row count
// (via the returned Reader), and the decoded per-row record sequence, in
// schema field order.
func DecodeBytes(data []byte, opts ...container.ReaderOption) (*container.Reader, []container.Record, error) {
	r, err := container.Open(data, opts...)
	if err != nil {
		return nil, nil, err
	}

	records, err := r.Records()
	if err != nil {
		return nil, nil, err
	}

	return r, records, nil
}

// Open parses a JONX file's header and schema, returning a lazy reader
// handle that defers column materialization until requested.
func Open(data []byte, opts ...container.ReaderOption) (*container.Reader, error) {
	return container.Open(data, opts...)
}
