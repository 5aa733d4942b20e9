package output

import (
	"fmt"
	"sort"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
)

// TestSummary describes the outcome of one processed trial.
type TestSummary struct {
	Test string
	// Rows is the number of records written.
	Rows int
	// Skipped counts samples with no tibia or femur pose.
	Skipped int
	// Unreadable counts recording rows with an unreadable tracker cell.
	Unreadable  int
	MeanFlexion float64
	PeakFlexion float64
}

// Summarize computes the flexion statistics of a trial's records.
func Summarize(test string, records []Record, skipped, unreadable int) TestSummary {
	ts := TestSummary{Test: test, Rows: len(records), Skipped: skipped, Unreadable: unreadable}
	if len(records) == 0 {
		return ts
	}
	flexion := make(stats.Float64Data, 0, len(records))
	for _, r := range records {
		flexion = append(flexion, r.Flexion)
	}
	// errors only come from empty input, ruled out above
	ts.MeanFlexion, _ = flexion.Mean()
	ts.PeakFlexion, _ = flexion.Max()
	return ts
}

// Summary collects the trial summaries of a run. It is safe for concurrent use.
type Summary struct {
	mu    sync.Mutex
	tests []TestSummary
}

// Add records the summary of one trial.
func (s *Summary) Add(ts TestSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tests = append(s.tests, ts)
}

// Tests returns the trial summaries sorted by test name.
func (s *Summary) Tests() []TestSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]TestSummary(nil), s.tests...)
	sort.Slice(out, func(i, j int) bool { return out[i].Test < out[j].Test })
	return out
}

// String prints out a table of each trial, with its row counts and flexion statistics.
func (s *Summary) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Test", "Rows", "Skipped", "Unreadable", "Mean flexion", "Peak flexion"})
	for _, ts := range s.Tests() {
		t.AppendRow(table.Row{
			ts.Test,
			ts.Rows,
			ts.Skipped,
			ts.Unreadable,
			fmt.Sprintf("%.2f", ts.MeanFlexion),
			fmt.Sprintf("%.2f", ts.PeakFlexion),
		})
	}
	return t.Render()
}

// FrameRow is one pose printed by FrameTable.
type FrameRow struct {
	Name        string
	Parent      string
	Translation r3.Vector
	// Angles are Euler angles in degrees.
	Angles r3.Vector
}

// FrameTable prints out a table of poses, with columns of name, parent, translation and orientation.
func FrameTable(rows []FrameRow) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Parent", "Translation", "Orientation"})
	for i, r := range rows {
		t.AppendRow([]interface{}{
			fmt.Sprintf("%d", i+1),
			r.Name,
			r.Parent,
			fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", r.Translation.X, r.Translation.Y, r.Translation.Z),
			fmt.Sprintf("Roll:%.2f, Pitch:%.2f, Yaw:%.2f", r.Angles.X, r.Angles.Y, r.Angles.Z),
		})
	}
	return t.Render()
}
