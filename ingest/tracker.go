package ingest

import (
	"io"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/jointkin/anatomy"
)

// Tracker names used as column prefixes in recordings.
const (
	TrackerPin1    = "pin1"
	TrackerPin2    = "pin2"
	TrackerPatella = "patella"
)

var trackerFields = []string{"q0", "qx", "qy", "qz", "x", "y", "z"}

func trackerColumns(prefix string) []string {
	cols := make([]string, 0, len(trackerFields))
	for _, f := range trackerFields {
		if prefix == "" {
			cols = append(cols, f)
		} else {
			cols = append(cols, prefix+"_"+f)
		}
	}
	return cols
}

// Recording is the content of one dynamic trial: the samples of every tracker present.
// An unreadable sample is kept with a zero quaternion, which frame building reports as
// missing data, so sample i refers to the same instant for every tracker.
type Recording struct {
	Pin1    *anatomy.Coords
	Pin2    *anatomy.Coords
	Patella *anatomy.Coords
	// Unreadable counts rows with at least one unreadable tracker sample.
	Unreadable int
}

// Tracker returns the recording of the named tracker, or nil if absent.
func (r *Recording) Tracker(name string) *anatomy.Coords {
	switch name {
	case TrackerPin1:
		return r.Pin1
	case TrackerPin2:
		return r.Pin2
	case TrackerPatella:
		return r.Patella
	default:
		return nil
	}
}

// Len returns the number of kept samples.
func (r *Recording) Len() int {
	n := 0
	for _, c := range []*anatomy.Coords{r.Pin1, r.Pin2, r.Patella} {
		if c.Len() > n {
			n = c.Len()
		}
	}
	return n
}

// ReadRecordingFile reads a dynamic trial recording.
func ReadRecordingFile(path string) (*Recording, error) {
	t, err := readTableFile(path)
	if err != nil {
		return nil, err
	}
	return t.recording(), nil
}

// ReadRecording reads a dynamic trial recording with prefixed tracker columns such as pin1_q0.
// A tracker whose columns are not all present is left nil.
func ReadRecording(r io.Reader) (*Recording, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	return t.recording(), nil
}

func (t *table) recording() *Recording {
	names := []string{TrackerPin1, TrackerPin2, TrackerPatella}
	present := make([]string, 0, len(names))
	idx := make(map[string][]int, len(names))
	for _, n := range names {
		if i, ok := t.indices(trackerColumns(n)...); ok {
			present = append(present, n)
			idx[n] = i
		}
	}

	rec := &Recording{}
	coords := make(map[string]*anatomy.Coords, len(present))
	for _, n := range present {
		coords[n] = &anatomy.Coords{}
	}
	blank := make([]float64, len(trackerFields))
	for _, row := range t.rows {
		unreadable := false
		for _, n := range present {
			vals, ok := floats(row, idx[n])
			if !ok {
				unreadable = true
				vals = blank
			}
			appendSample(coords[n], vals)
		}
		if unreadable {
			rec.Unreadable++
		}
	}

	rec.Pin1 = coords[TrackerPin1]
	rec.Pin2 = coords[TrackerPin2]
	rec.Patella = coords[TrackerPatella]
	return rec
}

func appendSample(c *anatomy.Coords, vals []float64) {
	c.Append(
		quat.Number{Real: vals[0], Imag: vals[1], Jmag: vals[2], Kmag: vals[3]},
		r3.Vector{X: vals[4], Y: vals[5], Z: vals[6]},
	)
}

// trackerCoords reads a single tracker recording whose columns are either unprefixed
// (q0, qx, ...) or prefixed with the tracker name. Unreadable rows are dropped and counted.
func (t *table) trackerCoords(tracker string) (*anatomy.Coords, int, bool) {
	idx, ok := t.indices(trackerColumns("")...)
	if !ok {
		if idx, ok = t.indices(trackerColumns(tracker)...); !ok {
			return nil, 0, false
		}
	}
	coords := &anatomy.Coords{}
	dropped := 0
	for _, row := range t.rows {
		vals, ok := floats(row, idx)
		if !ok {
			dropped++
			continue
		}
		appendSample(coords, vals)
	}
	return coords, dropped, true
}
