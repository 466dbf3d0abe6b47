package container

import (
	"encoding/json"
	"fmt"

	"github.com/jonxfmt/jonx/coldata"
	"github.com/jonxfmt/jonx/colindex"
	"github.com/jonxfmt/jonx/compress"
	"github.com/jonxfmt/jonx/endian"
	"github.com/jonxfmt/jonx/errs"
	"github.com/jonxfmt/jonx/frame"
	"github.com/jonxfmt/jonx/internal/hash"
	"github.com/jonxfmt/jonx/internal/options"
	"github.com/jonxfmt/jonx/schema"
)

// region is a frame's location within the file: its compressed payload
// offset and length, as located by frame.Region without decompressing.
type region struct {
	payloadOffset int
	payloadLength int
}

// Reader is a lazy view over a JONX file's bytes: header and schema are
// parsed eagerly at Open, but column and index data are only located (and
// only decompressed) on first access.
//
// A Reader is not safe for concurrent directory population; each field is
// looked up and cached under a single directory populated once, not
// per-goroutine.
type Reader struct {
	data   []byte
	codec  compress.Codec
	config readerConfig

	header Header
	schema *schema.Schema

	columnsOffset int

	directory      map[string]region
	indexDirectory map[string]region

	schemaChecksum uint64
}

// Open parses a JONX file's header and schema frame, returning a reader
// handle. No column data is read until GetColumn/GetColumns/FindMin/FindMax
// /Sum/Avg/Validate is called.
func Open(data []byte, opts ...ReaderOption) (*Reader, error) {
	config := readerConfig{verifyChecksum: true}
	if err := options.Apply(&config, opts...); err != nil {
		return nil, err
	}

	header, err := readHeader(data)
	if err != nil {
		return nil, err
	}

	codec := compress.NewZstdCompressor()

	schemaPlaintext, next, err := frame.Read(data, HeaderSize, codec)
	if err != nil {
		return nil, fmt.Errorf("jonx: reading schema frame: %w", err)
	}

	var sch schema.Schema
	if err := json.Unmarshal(schemaPlaintext, &sch); err != nil {
		return nil, err
	}

	r := &Reader{
		data:          data,
		codec:         codec,
		config:        config,
		header:        header,
		schema:        &sch,
		columnsOffset: next,
	}

	if config.verifyChecksum {
		r.schemaChecksum = hash.Bytes(schemaPlaintext)
	}

	return r, nil
}

// Schema returns the parsed schema (ordered field list, type map, row
// count).
func (r *Reader) Schema() *schema.Schema { return r.schema }

// SchemaChecksum returns the xxhash fingerprint of the schema frame's raw
// plaintext, or 0 if WithReaderChecksumVerification(false) was used to
// skip computing it.
func (r *Reader) SchemaChecksum() uint64 { return r.schemaChecksum }

// ensureDirectory performs the one-time frame-by-frame walk locating every
// column frame's byte region, then parses the index section that follows
// the last column.
func (r *Reader) ensureDirectory() error {
	if r.directory != nil {
		return nil
	}

	directory := make(map[string]region, len(r.schema.Fields))
	offset := r.columnsOffset

	for _, f := range r.schema.Fields {
		payloadOffset, payloadLength, next, err := frame.Region(r.data, offset)
		if err != nil {
			return fmt.Errorf("jonx: locating column %q: %w", f, err)
		}
		directory[f] = region{payloadOffset: payloadOffset, payloadLength: payloadLength}
		offset = next
	}

	indexDirectory, err := r.parseIndexSection(offset)
	if err != nil {
		return err
	}

	r.directory = directory
	r.indexDirectory = indexDirectory

	return nil
}

func (r *Reader) parseIndexSection(offset int) (map[string]region, error) {
	engine := endian.GetLittleEndianEngine()

	if offset+4 > len(r.data) {
		return nil, fmt.Errorf("%w: index section count truncated", errs.ErrFrameTruncated)
	}
	count := engine.Uint32(r.data[offset : offset+4])
	offset += 4

	directory := make(map[string]region, count)
	for range count {
		if offset+4 > len(r.data) {
			return nil, fmt.Errorf("%w: index entry name length truncated", errs.ErrFrameTruncated)
		}
		nameLen := int(engine.Uint32(r.data[offset : offset+4]))
		offset += 4

		if offset+nameLen > len(r.data) {
			return nil, fmt.Errorf("%w: index entry name truncated", errs.ErrFrameTruncated)
		}
		name := string(r.data[offset : offset+nameLen])
		offset += nameLen

		payloadOffset, payloadLength, next, err := frame.Region(r.data, offset)
		if err != nil {
			return nil, fmt.Errorf("jonx: locating index %q: %w", name, err)
		}
		directory[name] = region{payloadOffset: payloadOffset, payloadLength: payloadLength}
		offset = next
	}

	return directory, nil
}

// GetColumn decompresses and decodes one column. Decoded columns are not
// cached.
func (r *Reader) GetColumn(field string) ([]any, error) {
	if err := r.ensureDirectory(); err != nil {
		return nil, err
	}

	reg, ok := r.directory[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownField, field)
	}

	plaintext, err := frame.ReadRegion(r.data, reg.payloadOffset, reg.payloadLength, r.codec)
	if err != nil {
		return nil, fmt.Errorf("jonx: reading column %q: %w", field, err)
	}

	values, err := coldata.Decode(plaintext, r.schema.Types[field], int(r.schema.NumRows))
	if err != nil {
		return nil, fmt.Errorf("jonx: decoding column %q: %w", field, err)
	}

	return values, nil
}

// GetColumns decodes a set of columns via a single directory walk.
func (r *Reader) GetColumns(fields []string) (map[string][]any, error) {
	if err := r.ensureDirectory(); err != nil {
		return nil, err
	}

	out := make(map[string][]any, len(fields))
	for _, f := range fields {
		values, err := r.GetColumn(f)
		if err != nil {
			return nil, err
		}
		out[f] = values
	}

	return out, nil
}

// Records fully materializes the file into a per-row Record sequence in
// schema field order, the inverse of Writer.Write's row-to-column
// transpose.
func (r *Reader) Records() ([]Record, error) {
	cols, err := r.GetColumns(r.schema.Fields)
	if err != nil {
		return nil, err
	}

	records := make([]Record, r.schema.NumRows)
	for i := range records {
		rec := make(Record, len(r.schema.Fields))
		for j, f := range r.schema.Fields {
			rec[j] = Field{Name: f, Value: cols[f][i]}
		}
		records[i] = rec
	}

	return records, nil
}

func (r *Reader) loadIndex(field string) ([]uint32, error) {
	if err := r.ensureDirectory(); err != nil {
		return nil, err
	}

	reg, ok := r.indexDirectory[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q has no index", errs.ErrIndexInvalid, field)
	}

	plaintext, err := frame.ReadRegion(r.data, reg.payloadOffset, reg.payloadLength, r.codec)
	if err != nil {
		return nil, fmt.Errorf("jonx: reading index %q: %w", field, err)
	}

	return colindex.Decode(plaintext, int(r.schema.NumRows))
}

// HasIndex reports whether field has a stored argsort index. Absence of an
// index is legal, not an error; only an unknown field is.
func (r *Reader) HasIndex(field string) (bool, error) {
	if !r.schema.HasField(field) {
		return false, fmt.Errorf("%w: %q", errs.ErrUnknownField, field)
	}
	if err := r.ensureDirectory(); err != nil {
		return false, err
	}

	_, ok := r.indexDirectory[field]

	return ok, nil
}

// IsNumeric reports whether field's declared type participates in
// FindMin/FindMax/Sum/Avg.
func (r *Reader) IsNumeric(field string) (bool, error) {
	typ, ok := r.schema.Types[field]
	if !ok {
		return false, fmt.Errorf("%w: %q", errs.ErrUnknownField, field)
	}

	return typ.IsNumeric(), nil
}

// FindMin returns field's minimum value. With useIndex, the index frame is
// consulted directly (O(1) beyond decompressing the column); otherwise the
// whole column is linearly scanned.
func (r *Reader) FindMin(field string, useIndex bool) (any, error) {
	return r.findExtremum(field, useIndex, true)
}

// FindMax returns field's maximum value, analogous to FindMin.
func (r *Reader) FindMax(field string, useIndex bool) (any, error) {
	return r.findExtremum(field, useIndex, false)
}

func (r *Reader) findExtremum(field string, useIndex, wantMin bool) (any, error) {
	numeric, err := r.IsNumeric(field)
	if err != nil {
		return nil, err
	}
	if !numeric {
		return nil, fmt.Errorf("%w: %q", errs.ErrNotNumeric, field)
	}

	values, err := r.GetColumn(field)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %q", errs.ErrEmptyColumn, field)
	}

	if useIndex {
		hasIdx, err := r.HasIndex(field)
		if err != nil {
			return nil, err
		}
		if hasIdx {
			perm, err := r.loadIndex(field)
			if err != nil {
				return nil, err
			}
			if wantMin {
				return values[colindex.Min(perm)], nil
			}

			return values[colindex.Max(perm)], nil
		}
	}

	best := values[0]
	bestKey, _ := colindex.Key(best)
	for _, v := range values[1:] {
		k, ok := colindex.Key(v)
		if !ok {
			continue
		}
		if (wantMin && k < bestKey) || (!wantMin && k > bestKey) {
			best, bestKey = v, k
		}
	}

	return best, nil
}

// Sum returns the sum of field's values.
func (r *Reader) Sum(field string) (float64, error) {
	numeric, err := r.IsNumeric(field)
	if err != nil {
		return 0, err
	}
	if !numeric {
		return 0, fmt.Errorf("%w: %q", errs.ErrNotNumeric, field)
	}

	values, err := r.GetColumn(field)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, v := range values {
		k, _ := colindex.Key(v)
		total += k
	}

	return total, nil
}

// Avg returns the arithmetic mean of field's values.
func (r *Reader) Avg(field string) (float64, error) {
	total, err := r.Sum(field)
	if err != nil {
		return 0, err
	}
	if r.schema.NumRows == 0 {
		return 0, nil
	}

	return total / float64(r.schema.NumRows), nil
}

// Count returns N, the row count shared by every column.
func (r *Reader) Count() uint32 { return r.schema.NumRows }

// CountField returns N for a specific field, erroring if the field is
// unknown.
func (r *Reader) CountField(field string) (uint32, error) {
	if !r.schema.HasField(field) {
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownField, field)
	}

	return r.schema.NumRows, nil
}

// Info is container.Reader's file-level metadata summary.
type Info struct {
	Schema        *schema.Schema
	RowCount      uint32
	ColumnCount   int
	IndexedFields []string
	FileSize      int
}

// Info returns the schema, row count, column count, indexed field list,
// and file size.
func (r *Reader) Info() (Info, error) {
	if err := r.ensureDirectory(); err != nil {
		return Info{}, err
	}

	var indexed []string
	for _, f := range r.schema.Fields {
		if _, ok := r.indexDirectory[f]; ok {
			indexed = append(indexed, f)
		}
	}

	return Info{
		Schema:        r.schema,
		RowCount:      r.schema.NumRows,
		ColumnCount:   len(r.schema.Fields),
		IndexedFields: indexed,
		FileSize:      len(r.data),
	}, nil
}

// CheckSchema verifies the schema's internal consistency and that every
// indexed field is numeric. It never decompresses a column or index frame;
// the check is structural only.
func (r *Reader) CheckSchema() error {
	if err := r.schema.Validate(); err != nil {
		return err
	}

	if err := r.ensureDirectory(); err != nil {
		return err
	}

	for field := range r.indexDirectory {
		if !r.schema.Types[field].IsNumeric() {
			return fmt.Errorf("%w: index present for non-numeric field %q", errs.ErrIndexInvalid, field)
		}
	}

	return nil
}

// ValidationReport is the structured outcome of Validate: it collects
// every error encountered into a single report rather than aborting at
// the first failure.
type ValidationReport struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate performs a full O(N) check: decompress every column and index,
// re-verify lengths, and re-check that each index is a valid, correctly
// ordered permutation.
func (r *Reader) Validate() ValidationReport {
	report := ValidationReport{Valid: true}

	if err := r.CheckSchema(); err != nil {
		report.Valid = false
		report.Errors = append(report.Errors, err.Error())

		return report
	}

	for _, field := range r.schema.Fields {
		values, err := r.GetColumn(field)
		if err != nil {
			report.Valid = false
			report.Errors = append(report.Errors, fmt.Sprintf("column %q: %v", field, err))

			continue
		}

		if !r.schema.Types[field].IsNumeric() {
			continue
		}

		hasIdx, _ := r.HasIndex(field)
		if !hasIdx {
			report.Warnings = append(report.Warnings, fmt.Sprintf("numeric column %q has no index", field))

			continue
		}

		perm, err := r.loadIndex(field)
		if err != nil {
			report.Valid = false
			report.Errors = append(report.Errors, fmt.Sprintf("index %q: %v", field, err))

			continue
		}

		if err := colindex.Validate(perm, values); err != nil {
			report.Valid = false
			report.Errors = append(report.Errors, fmt.Sprintf("index %q: %v", field, err))
		}
	}

	return report
}
