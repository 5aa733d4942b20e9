package pipeline

import (
	"go.viam.com/jointkin/anatomy"
	"go.viam.com/jointkin/output"
	rf "go.viam.com/jointkin/referenceframe"
)

func frameRow[D, R rf.Frame](cs *rf.CoordinateSystem[D, R], side anatomy.Side) (output.FrameRow, bool) {
	if cs == nil {
		return output.FrameRow{}, false
	}
	return output.FrameRow{
		Name:        rf.FrameName[D](),
		Parent:      rf.FrameName[R](),
		Translation: cs.Translation(),
		Angles:      cs.Rotation(side),
	}, true
}

// Frames lists every static pose that could be built, bones in the global frame first.
func (s *Statics) Frames() []output.FrameRow {
	var rows []output.FrameRow
	add := func(row output.FrameRow, ok bool) {
		if ok {
			rows = append(rows, row)
		}
	}
	add(frameRow(s.Tibia, s.Side))
	add(frameRow(s.Femur, s.Side))
	add(frameRow(s.TibiaInPin1, s.Side))
	add(frameRow(s.FemurInPin2, s.Side))
	return rows
}
