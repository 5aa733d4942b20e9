package anatomy

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// Probe holds the raw points digitized for one landmark.
type Probe struct {
	Points []r3.Vector
}

// Len returns the number of digitized points.
func (p *Probe) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Points)
}

func (p *Probe) axes() (xs, ys, zs stats.Float64Data) {
	xs = make(stats.Float64Data, 0, len(p.Points))
	ys = make(stats.Float64Data, 0, len(p.Points))
	zs = make(stats.Float64Data, 0, len(p.Points))
	for _, pt := range p.Points {
		xs = append(xs, pt.X)
		ys = append(ys, pt.Y)
		zs = append(zs, pt.Z)
	}
	return xs, ys, zs
}

// MeanXYZ returns the mean digitized point. An empty probe is missing data.
func (p *Probe) MeanXYZ() (r3.Vector, error) {
	if p.Len() == 0 {
		return r3.Vector{}, NewMissingDataError("probe has no points")
	}
	xs, ys, zs := p.axes()
	xMean, err := xs.Mean()
	if err != nil {
		return r3.Vector{}, errors.Wrap(err, "x mean")
	}
	yMean, err := ys.Mean()
	if err != nil {
		return r3.Vector{}, errors.Wrap(err, "y mean")
	}
	zMean, err := zs.Mean()
	if err != nil {
		return r3.Vector{}, errors.Wrap(err, "z mean")
	}
	return r3.Vector{X: xMean, Y: yMean, Z: zMean}, nil
}

// Spread returns the root of the summed per-axis population variances, a rough measure of how
// still the probe was held while digitizing.
func (p *Probe) Spread() (float64, error) {
	if p.Len() == 0 {
		return 0, NewMissingDataError("probe has no points")
	}
	var total float64
	xs, ys, zs := p.axes()
	for _, axis := range []stats.Float64Data{xs, ys, zs} {
		v, err := stats.PopulationVariance(axis)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return math.Sqrt(total), nil
}

// Landmark is one digitization record: a bone, its anatomical role(s), the body side and
// the probe samples. The first landmark of a bone also carries the static recording of the
// bone's tracker taken while digitizing.
type Landmark struct {
	Bone      Bone
	Positions []Position
	Side      Side
	Probe     *Probe
	Tracker   *Coords
}

// Primary returns the landmark's first position, the one used to assign it a role.
func (l *Landmark) Primary() (Position, bool) {
	if l == nil || len(l.Positions) == 0 {
		return Medial, false
	}
	return l.Positions[0], true
}

// Mean returns the landmark's mean probe point.
func (l *Landmark) Mean() (r3.Vector, error) {
	if l == nil {
		return r3.Vector{}, NewMissingDataError("landmark not digitized")
	}
	if l.Probe == nil {
		return r3.Vector{}, NewMissingDataError("%s %v has no probe data", l.Bone, l.Positions)
	}
	return l.Probe.MeanXYZ()
}

// BoneLocations is a fixed-role lookup of the landmarks of one bone.
type BoneLocations struct {
	Medial    *Landmark
	Lateral   *Landmark
	Anterior  *Landmark
	Posterior *Landmark
	Proximal  *Landmark
	Distal    *Landmark
}

// NewBoneLocations assigns each landmark to the slot of its primary position in one pass.
// When several landmarks share a role the last one wins.
func NewBoneLocations(landmarks []*Landmark) BoneLocations {
	var locs BoneLocations
	for _, l := range landmarks {
		p, ok := l.Primary()
		if !ok {
			continue
		}
		*locs.slot(p) = l
	}
	return locs
}

func (bl *BoneLocations) slot(p Position) **Landmark {
	switch p {
	case Medial:
		return &bl.Medial
	case Lateral:
		return &bl.Lateral
	case Anterior:
		return &bl.Anterior
	case Posterior:
		return &bl.Posterior
	case Proximal:
		return &bl.Proximal
	case Distal:
		return &bl.Distal
	default:
		panic(errors.Errorf("unknown position %d", p))
	}
}

// Get returns the landmark filling the given role, or nil.
func (bl BoneLocations) Get(p Position) *Landmark {
	return *bl.slot(p)
}

// Mean returns the mean probe point of the given role.
func (bl BoneLocations) Mean(p Position) (r3.Vector, error) {
	l := bl.Get(p)
	if l == nil {
		return r3.Vector{}, NewMissingDataError("no %s landmark", p)
	}
	return l.Mean()
}
