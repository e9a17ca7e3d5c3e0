// Package tabular reads and writes the delimited tables around the
// classification core: decoding, header clean-up and typed row mapping on the
// way in, column ordering and atomic writes on the way out.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/cashflow-classifier/internal/apperror"
	"fjacquet/cashflow-classifier/internal/textutils"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/transform"
)

// HeaderMapper canonicalizes a trimmed header name (e.g. "subgrupos" -> "subgrupo").
type HeaderMapper interface {
	Canonical(header string) string
}

// ReadOptions controls how a table is decoded.
type ReadOptions struct {
	Delimiter rune
	Encoding  string
	Headers   HeaderMapper // nil keeps trimmed headers as-is
}

// Table is a decoded delimited table with normalized headers.
type Table struct {
	Name       string
	Path       string
	RawHeaders []string
	Headers    []string
	Rows       [][]string
}

// ReadFile opens path and decodes it. A missing file yields *apperror.MissingInputError.
func ReadFile(path, name string, opts ReadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &apperror.MissingInputError{Table: name, Path: path, Err: err}
		}
		return nil, fmt.Errorf("error opening %s file: %w", name, err)
	}
	defer f.Close()

	t, err := Read(f, name, opts)
	if err != nil {
		return nil, err
	}
	t.Path = path
	return t, nil
}

// Read decodes a table from r. Header cells are trimmed and passed through the
// configured HeaderMapper. Short rows are padded so every row has one cell per
// header. Empty lines are skipped; a row of empty cells (";;") is kept, so it
// still occupies its position in Rows.
func Read(r io.Reader, name string, opts ReadOptions) (*Table, error) {
	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(transform.NewReader(r, enc.NewDecoder()))
	reader.Comma = delimiterOrDefault(opts.Delimiter)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	raw, err := reader.Read()
	if err == io.EOF {
		return nil, &apperror.SchemaError{Table: name}
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s header: %w", name, err)
	}

	t := &Table{
		Name:       name,
		RawHeaders: raw,
		Headers:    make([]string, len(raw)),
	}
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if opts.Headers != nil {
			h = opts.Headers.Canonical(h)
		}
		t.Headers[i] = h
	}
	if dups := duplicates(t.Headers); len(dups) > 0 {
		return nil, &apperror.SchemaError{Table: name, Duplicated: dups, Found: t.Headers}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", name, err)
		}
		for len(record) < len(t.Headers) {
			record = append(record, "")
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column is present.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// RequireColumns checks the header for every required column before any row is
// looked at. The returned *apperror.SchemaError lists what was found and, when
// a found header is a near miss, suggests it.
func (t *Table) RequireColumns(required ...string) error {
	var missing []string
	suggestions := map[string]string{}
	for _, col := range required {
		if t.HasColumn(col) {
			continue
		}
		missing = append(missing, col)
		if s, ok := textutils.Closest(col, t.Headers, 2); ok {
			suggestions[col] = s
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &apperror.SchemaError{
		Table:       t.Name,
		Missing:     missing,
		Found:       append([]string(nil), t.Headers...),
		Suggestions: suggestions,
	}
}

// CSVReader replays the normalized header and the rows, for gocsv.
func (t *Table) CSVReader() gocsv.CSVReader {
	return &tableReader{table: t, next: -1}
}

// Decode maps every row onto T using its `csv` struct tags.
func Decode[T any](t *Table) ([]T, error) {
	var out []T
	if err := gocsv.UnmarshalCSV(t.CSVReader(), &out); err != nil {
		return nil, fmt.Errorf("error decoding %s rows: %w", t.Name, err)
	}
	return out, nil
}

type tableReader struct {
	table *Table
	next  int // -1 = header
}

func (r *tableReader) Read() ([]string, error) {
	if r.next < 0 {
		r.next = 0
		return r.table.Headers, nil
	}
	if r.next >= len(r.table.Rows) {
		return nil, io.EOF
	}
	row := r.table.Rows[r.next]
	r.next++
	return row, nil
}

func (r *tableReader) ReadAll() ([][]string, error) {
	var all [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
		all = append(all, rec)
	}
}

func delimiterOrDefault(d rune) rune {
	if d == 0 {
		return ';'
	}
	return d
}

func duplicates(headers []string) []string {
	seen := make(map[string]int, len(headers))
	var dups []string
	for _, h := range headers {
		if h == "" {
			continue
		}
		seen[h]++
		if seen[h] == 2 {
			dups = append(dups, h)
		}
	}
	return dups
}
