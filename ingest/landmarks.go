package ingest

import (
	"path/filepath"
	"strings"

	"github.com/golang/geo/r3"

	"go.viam.com/jointkin/anatomy"
)

// DigitisationDir is the subfolder of a subject folder holding the landmark probe files.
const DigitisationDir = "digitisation"

// Landmark sets digitized for each bone, in order. The first landmark of each set carries
// the bone tracker's static recording.
var (
	TibiaPositions = [][]anatomy.Position{
		{anatomy.Medial},
		{anatomy.Lateral},
		{anatomy.Distal},
	}
	FemurPositions = [][]anatomy.Position{
		{anatomy.Medial},
		{anatomy.Lateral},
		{anatomy.Proximal},
	}
	PatellaPositions = [][]anatomy.Position{
		{anatomy.Medial, anatomy.Proximal},
		{anatomy.Medial, anatomy.Distal},
		{anatomy.Lateral, anatomy.Proximal},
		{anatomy.Lateral, anatomy.Distal},
	}
)

// Landmarks holds the landmarks of every bone, keyed by bone. An entry is nil when its file
// was not found.
type Landmarks map[anatomy.Bone][]*anatomy.Landmark

// First returns the first landmark of a bone, or nil.
func (l Landmarks) First(bone anatomy.Bone) *anatomy.Landmark {
	if lms := l[bone]; len(lms) > 0 {
		return lms[0]
	}
	return nil
}

// LandmarkFileName returns the probe file name of a landmark, e.g. "patella_medial_proximal.csv".
func LandmarkFileName(bone anatomy.Bone, positions []anatomy.Position) string {
	parts := make([]string, 0, len(positions)+1)
	parts = append(parts, bone.String())
	for _, p := range positions {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, "_") + ".csv"
}

// TrackerFileName returns the static tracker recording file name of a bone, e.g. "tibia_tracker.csv".
func TrackerFileName(bone anatomy.Bone) string {
	return bone.String() + "_tracker.csv"
}

// ReadProbe reads the x, y, z probe points of one landmark file. Rows with an unreadable cell
// are skipped. A missing or malformed file, or one without readable points, is missing data.
func ReadProbe(path string) (*anatomy.Probe, error) {
	t, err := readTableFile(path)
	if err != nil {
		return nil, err
	}
	idx, ok := t.indices("x", "y", "z")
	if !ok {
		return nil, anatomy.NewMissingDataError("%q has no x, y and z columns", path)
	}
	probe := &anatomy.Probe{Points: make([]r3.Vector, 0, len(t.rows))}
	for _, row := range t.rows {
		vals, ok := floats(row, idx)
		if !ok {
			continue
		}
		probe.Points = append(probe.Points, r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]})
	}
	if probe.Len() == 0 {
		return nil, anatomy.NewMissingDataError("no readable points in %q", path)
	}
	return probe, nil
}

// ReadTracker reads a bone's static tracker recording. Columns may be unprefixed or prefixed
// with the tracker name. It also returns the number of rows dropped for unreadable cells.
func ReadTracker(path, tracker string) (*anatomy.Coords, int, error) {
	t, err := readTableFile(path)
	if err != nil {
		return nil, 0, err
	}
	coords, dropped, ok := t.trackerCoords(tracker)
	if !ok {
		return nil, 0, anatomy.NewMissingDataError("%q has no %s tracker columns", path, tracker)
	}
	return coords, dropped, nil
}

// LoadLandmark reads one landmark of a bone from the subject folder root.
func LoadLandmark(root string, bone anatomy.Bone, side anatomy.Side, positions ...anatomy.Position) (*anatomy.Landmark, error) {
	probe, err := ReadProbe(filepath.Join(root, DigitisationDir, LandmarkFileName(bone, positions)))
	if err != nil {
		return nil, err
	}
	return &anatomy.Landmark{
		Bone:      bone,
		Positions: append([]anatomy.Position(nil), positions...),
		Side:      side,
		Probe:     probe,
	}, nil
}

// LoadBone reads the landmarks of a bone in the order given. A landmark whose file is missing
// is left nil, and the bone's tracker recording is attached to the first landmark when both exist.
// Only I/O errors are returned.
func LoadBone(root string, bone anatomy.Bone, side anatomy.Side, sets [][]anatomy.Position) ([]*anatomy.Landmark, error) {
	lms := make([]*anatomy.Landmark, len(sets))
	for i, positions := range sets {
		l, err := LoadLandmark(root, bone, side, positions...)
		if err != nil {
			if anatomy.IsMissingData(err) {
				continue
			}
			return nil, err
		}
		lms[i] = l
	}
	if len(lms) == 0 || lms[0] == nil {
		return lms, nil
	}
	coords, _, err := ReadTracker(filepath.Join(root, DigitisationDir, TrackerFileName(bone)), bone.Tracker())
	if err != nil && !anatomy.IsMissingData(err) {
		return nil, err
	}
	lms[0].Tracker = coords
	return lms, nil
}

// LoadLandmarks reads the tibia, femur and patella landmarks of a subject folder.
func LoadLandmarks(root string, side anatomy.Side) (Landmarks, error) {
	out := Landmarks{}
	for bone, sets := range map[anatomy.Bone][][]anatomy.Position{
		anatomy.Tibia:   TibiaPositions,
		anatomy.Femur:   FemurPositions,
		anatomy.Patella: PatellaPositions,
	} {
		lms, err := LoadBone(root, bone, side, sets)
		if err != nil {
			return nil, err
		}
		out[bone] = lms
	}
	return out, nil
}
