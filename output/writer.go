package output

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Writer writes records as CSV. The header is written with the first record, or on Flush
// when no record was written.
type Writer struct {
	csv           *csv.Writer
	closer        io.Closer
	headerWritten bool
	rows          int
}

// NewWriter returns a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// Create creates dir if needed and returns a Writer over a new file dir/name.
func Create(dir, name string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrapf(err, "failed to create output dir %q", dir)
	}
	path := filepath.Join(dir, name)
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create output file %q", path)
	}
	w := NewWriter(f)
	w.closer = f
	return w, nil
}

func (w *Writer) writeHeader() error {
	if w.headerWritten {
		return nil
	}
	w.headerWritten = true
	return w.csv.Write(Header())
}

// Write writes one record.
func (w *Writer) Write(r Record) error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	if err := w.csv.Write(r.Row()); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Rows returns the number of records written.
func (w *Writer) Rows() int {
	return w.rows
}

// Flush writes any buffered data.
func (w *Writer) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.csv.Flush()
	return w.csv.Error()
}

// Close flushes and closes the underlying file, if the Writer owns one.
func (w *Writer) Close() error {
	err := w.Flush()
	if w.closer != nil {
		err = multierr.Combine(err, w.closer.Close())
	}
	return err
}
