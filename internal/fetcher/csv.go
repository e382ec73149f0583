// Package fetcher parses tabular roster files used to import
// caller-supplied identification records.
package fetcher

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Table is a parsed tabular file: one header row plus data rows. Fields are
// space-trimmed; rows may vary in width.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of the first header matching any of the given
// names, case-insensitively, or -1 when none is present.
func (t *Table) Column(names ...string) int {
	for i, h := range t.Header {
		for _, name := range names {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
	}
	return -1
}

// Field returns the idx-th field of row, or "" when the row is too short or
// the column is absent.
func Field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// CSVOptions configures the CSV roster parser.
type CSVOptions struct {
	Delimiter rune // default ','
	Comment   rune // comment character (0 = none)
}

// ReadCSV parses a roster from r. The first row is the header.
func ReadCSV(ctx context.Context, r io.Reader, opts CSVOptions) (*Table, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	table := &Table{}
	for {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "csv: context cancelled")
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}

		for i, field := range record {
			record[i] = strings.TrimSpace(field)
		}

		if table.Header == nil {
			table.Header = record
			continue
		}
		table.Rows = append(table.Rows, record)
	}

	if table.Header == nil {
		return nil, eris.New("csv: empty file")
	}
	return table, nil
}

// ReadFile parses the roster at path, dispatching on the file extension.
// CSV and XLSX are supported.
func ReadFile(ctx context.Context, path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "fetcher: open %s", path)
		}
		defer f.Close()
		return ReadCSV(ctx, f, CSVOptions{})
	case ".xlsx":
		return ReadXLSX(path, XLSXOptions{})
	default:
		return nil, eris.Errorf("fetcher: unsupported roster format %q", filepath.Ext(path))
	}
}
