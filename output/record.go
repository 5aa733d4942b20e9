// Package output writes per-sample kinematics records and run summaries.
package output

import (
	"strconv"

	"github.com/golang/geo/r3"
)

// Record is one output row: the bone poses of one captured sample of a trial. Every angle is
// side corrected and in degrees.
type Record struct {
	Test   string
	Sample int

	// Tibia and Femur are the bone angles in the global frame.
	Tibia r3.Vector
	Femur r3.Vector
	// TibiaTranslation and FemurTranslation are the bone origins in the global frame.
	TibiaTranslation r3.Vector
	FemurTranslation r3.Vector
	// Knee is the tibia's angles in the femur frame.
	Knee r3.Vector

	Flexion         float64
	FilteredFlexion float64
}

// Header returns the CSV column names matching Row.
func Header() []string {
	return []string{
		"test", "sample",
		"tibia_x", "tibia_y", "tibia_z",
		"femur_x", "femur_y", "femur_z",
		"tibia_tx", "tibia_ty", "tibia_tz",
		"femur_tx", "femur_ty", "femur_tz",
		"knee_x", "knee_y", "knee_z",
		"flexion", "filtered_flexion",
	}
}

// Row formats the record as CSV cells.
func (r Record) Row() []string {
	row := make([]string, 0, len(Header()))
	row = append(row, r.Test, strconv.Itoa(r.Sample))
	for _, v := range []r3.Vector{r.Tibia, r.Femur, r.TibiaTranslation, r.FemurTranslation, r.Knee} {
		row = append(row, formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}
	return append(row, formatFloat(r.Flexion), formatFloat(r.FilteredFlexion))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
