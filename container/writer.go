// Package container implements the file assembler (Writer) and lazy
// reader (Reader) that compose header, schema frame, column frames, and
// index section into a complete JONX file.
//
// The Writer/Reader split and the directory-populated-on-first-access
// design generalize a fixed encoder/decoder pair from a fixed payload
// layout to an arbitrary-width typed column set. See DESIGN.md.
package container

import (
	"encoding/json"
	"fmt"

	"github.com/jonxfmt/jonx/coldata"
	"github.com/jonxfmt/jonx/colindex"
	"github.com/jonxfmt/jonx/compress"
	"github.com/jonxfmt/jonx/endian"
	"github.com/jonxfmt/jonx/errs"
	"github.com/jonxfmt/jonx/format"
	"github.com/jonxfmt/jonx/frame"
	"github.com/jonxfmt/jonx/internal/options"
	"github.com/jonxfmt/jonx/internal/pool"
	"github.com/jonxfmt/jonx/schema"
	"github.com/jonxfmt/jonx/typeinfer"
)

// Writer assembles a record sequence into a JONX file. A Writer holds no
// state between calls to Write; it is safe to reuse across independent
// record sequences.
type Writer struct {
	codec  compress.Codec
	config writerConfig
}

// NewWriter creates a Writer with defaults (zstd codec, checksum flag set)
// overridden by opts.
func NewWriter(opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		codec:  compress.NewZstdCompressor(),
		config: writerConfig{verifyChecksum: true},
	}
	if err := options.Apply(&w.config, opts...); err != nil {
		return nil, err
	}

	return w, nil
}

// Write encodes records into a complete JONX byte stream: transpose into
// per-field value vectors, infer types, write header, schema frame, column
// frames in schema order, and the index section.
func (w *Writer) Write(records []Record) ([]byte, error) {
	fields := fieldOrder(records)

	columns := make(map[string][]any, len(fields))
	for _, f := range fields {
		columns[f] = make([]any, len(records))
	}

	for i, rec := range records {
		for _, f := range fields {
			v, ok := rec.Get(f)
			if !ok {
				return nil, fmt.Errorf("%w: %q missing from record %d", errs.ErrMissingField, f, i)
			}
			columns[f][i] = v
		}
	}

	types := make(map[string]format.PhysicalType, len(fields))
	for _, f := range fields {
		typ, err := typeinfer.Infer(columns[f])
		if err != nil {
			return nil, fmt.Errorf("jonx: field %q: %w", f, err)
		}
		types[f] = typ
	}

	sch, err := schema.New(fields, types, uint32(len(records))) //nolint:gosec
	if err != nil {
		return nil, err
	}

	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)

	out := appendHeader(buf.B)

	schemaJSON, err := json.Marshal(sch)
	if err != nil {
		return nil, fmt.Errorf("jonx: marshaling schema: %w", err)
	}

	out, err = frame.Write(out, schemaJSON, w.codec)
	if err != nil {
		return nil, fmt.Errorf("jonx: writing schema frame: %w", err)
	}

	// decodedNumeric holds each numeric column's canonical post-narrowing
	// values (e.g. float16-rounded), decoded right back from what was just
	// encoded. The index must be built from these, not the raw input
	// values: index correctness is defined against what GetColumn later
	// returns, and narrowing can change value identity (and in principle
	// tie order) relative to the input.
	decodedNumeric := make(map[string][]any, len(fields))

	for _, f := range fields {
		plaintext, err := coldata.Encode(columns[f], types[f])
		if err != nil {
			return nil, fmt.Errorf("jonx: encoding column %q: %w", f, err)
		}

		if types[f].IsNumeric() {
			values, err := coldata.Decode(plaintext, types[f], len(records))
			if err != nil {
				return nil, fmt.Errorf("jonx: decoding column %q for indexing: %w", f, err)
			}
			decodedNumeric[f] = values
		}

		out, err = frame.Write(out, plaintext, w.codec)
		if err != nil {
			return nil, fmt.Errorf("jonx: writing column %q: %w", f, err)
		}
	}

	out, err = w.writeIndexSection(out, fields, types, decodedNumeric)
	if err != nil {
		return nil, err
	}

	// out starts on buf's pooled backing array (append moves it to a new
	// array only once it outgrows that capacity); copy before buf is
	// returned to the pool and reused by another Write call.
	result := make([]byte, len(out))
	copy(result, out)

	return result, nil
}

func (w *Writer) writeIndexSection(dst []byte, fields []string, types map[string]format.PhysicalType, decodedNumeric map[string][]any) ([]byte, error) {
	var indexed []string
	for _, f := range fields {
		if types[f].IsNumeric() {
			indexed = append(indexed, f)
		}
	}

	engine := endian.GetLittleEndianEngine()
	dst = engine.AppendUint32(dst, uint32(len(indexed))) //nolint:gosec

	for _, f := range indexed {
		perm, err := colindex.Build(decodedNumeric[f])
		if err != nil {
			return nil, fmt.Errorf("jonx: building index for %q: %w", f, err)
		}

		dst = engine.AppendUint32(dst, uint32(len(f))) //nolint:gosec
		dst = append(dst, f...)

		dst, err = frame.Write(dst, colindex.Encode(perm), w.codec)
		if err != nil {
			return nil, fmt.Errorf("jonx: writing index for %q: %w", f, err)
		}
	}

	return dst, nil
}

// fieldOrder derives the schema field set in insertion order from the
// first record, extended by fields appearing later.
func fieldOrder(records []Record) []string {
	var fields []string
	seen := make(map[string]struct{})

	for _, rec := range records {
		for _, field := range rec {
			if _, ok := seen[field.Name]; !ok {
				seen[field.Name] = struct{}{}
				fields = append(fields, field.Name)
			}
		}
	}

	return fields
}
