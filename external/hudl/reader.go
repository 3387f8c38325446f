package hudl

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoHeader is returned when the file has no header row.
var ErrNoHeader = errors.New("csv header row is missing")

// Record is one data row of a play-by-play export, coerced column by column.
type Record struct {
	Line      int
	raw       map[Column]string
	ints      map[Column]*int
	strs      map[Column]*string
	nullified int
}

// Int returns the coerced integer cell, nil when absent or malformed.
func (r Record) Int(col Column) *int {
	return r.ints[col]
}

// String returns the trimmed text cell, nil when absent or empty.
func (r Record) String(col Column) *string {
	return r.strs[col]
}

// Raw returns the untouched cell and whether the row carried it.
func (r Record) Raw(col Column) (string, bool) {
	v, ok := r.raw[col]
	return v, ok
}

// Nullified counts non-empty integer cells that could not be parsed.
func (r Record) Nullified() int {
	return r.nullified
}

// PlayReader streams a play-by-play export one row at a time.
type PlayReader struct {
	csv   *csv.Reader
	index map[Column]int
}

// NewPlayReader consumes the header row. A leading UTF-8 byte-order mark is ignored.
func NewPlayReader(src io.Reader) (*PlayReader, error) {
	cr, header, err := openCSV(src)
	if err != nil {
		return nil, err
	}

	return &PlayReader{
		csv:   cr,
		index: indexHeader(header, playColumns),
	}, nil
}

// Has reports whether the header carried the column.
func (r *PlayReader) Has(col Column) bool {
	_, ok := r.index[col]
	return ok
}

// Next returns the next data row, or io.EOF after the last one.
func (r *PlayReader) Next() (Record, error) {
	fields, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("read play row: %w", err)
	}
	line, _ := r.csv.FieldPos(0)

	rec := Record{
		Line: line,
		raw:  make(map[Column]string, len(r.index)),
		ints: make(map[Column]*int, len(r.index)),
		strs: make(map[Column]*string, len(r.index)),
	}
	for _, spec := range playColumns {
		pos, ok := r.index[spec.column]
		if !ok || pos >= len(fields) {
			continue
		}
		cell := fields[pos]
		rec.raw[spec.column] = cell

		switch spec.kind {
		case kindInt:
			rec.ints[spec.column] = Int(cell)
			if malformedInt(cell) {
				rec.nullified++
			}
		default:
			rec.strs[spec.column] = String(cell)
		}
	}

	return rec, nil
}

func openCSV(src io.Reader) (*csv.Reader, []string, error) {
	if src == nil {
		return nil, nil, fmt.Errorf("csv source is required")
	}

	decoded := transform.NewReader(src, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrNoHeader
		}
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}

	return cr, append([]string(nil), header...), nil
}
