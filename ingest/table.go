// Package ingest reads digitization and tracker recordings from a subject folder.
package ingest

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/jointkin/anatomy"
)

// table is a parsed CSV file: a lowercase header index and the raw rows.
type table struct {
	columns map[string]int
	rows    [][]string
}

func readTableFile(path string) (*table, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, anatomy.NewMissingDataError("no file %q", path)
		}
		return nil, errors.Wrapf(err, "failed to open %q", path)
	}
	defer f.Close() //nolint:errcheck

	t, err := readTable(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %q", path)
	}
	return t, nil
}

// readTable parses a CSV stream. An empty stream or malformed CSV is missing data; only
// errors from the underlying reader are returned as is.
func readTable(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, anatomy.NewMissingDataError("empty csv, expected a header row")
		}
		return nil, malformed(err)
	}
	t := &table{columns: make(map[string]int, len(header))}
	for i, name := range header {
		t.columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	t.rows, err = reader.ReadAll()
	if err != nil {
		return nil, malformed(err)
	}
	return t, nil
}

func malformed(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return anatomy.NewMissingDataError("malformed csv: %v", parseErr)
	}
	return err
}

// indices returns the column index of every name, or false if any is absent.
func (t *table) indices(names ...string) ([]int, bool) {
	idx := make([]int, 0, len(names))
	for _, n := range names {
		i, ok := t.columns[n]
		if !ok {
			return nil, false
		}
		idx = append(idx, i)
	}
	return idx, true
}

// floats parses the given columns of a row. ok is false when a cell is absent, blank or not a
// finite number.
func floats(row []string, idx []int) (vals []float64, ok bool) {
	vals = make([]float64, 0, len(idx))
	for _, i := range idx {
		if i >= len(row) {
			return nil, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		vals = append(vals, v)
	}
	return vals, true
}
