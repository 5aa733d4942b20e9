package output

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// An Observer receives every finished record of a trial, in sample order.
type Observer interface {
	Observe(r Record)
	Close() error
}

// Observers fans records out to several observers.
type Observers []Observer

// Observe implements Observer.
func (o Observers) Observe(r Record) {
	for _, obs := range o {
		obs.Observe(r)
	}
}

// Close closes every observer and combines their errors.
func (o Observers) Close() error {
	var err error
	for _, obs := range o {
		err = multierr.Combine(err, obs.Close())
	}
	return err
}

// PlotObserver collects the flexion angle of a trial and renders it as a PNG line plot on
// Close. Nothing is written for a trial without records.
type PlotObserver struct {
	mu       sync.Mutex
	path     string
	title    string
	raw      plotter.XYs
	filtered plotter.XYs
}

// NewPlotObserver returns an observer that will save its plot to path.
func NewPlotObserver(path, title string) *PlotObserver {
	return &PlotObserver{path: path, title: title}
}

// Observe implements Observer.
func (po *PlotObserver) Observe(r Record) {
	po.mu.Lock()
	defer po.mu.Unlock()
	x := float64(r.Sample)
	po.raw = append(po.raw, plotter.XY{X: x, Y: r.Flexion})
	po.filtered = append(po.filtered, plotter.XY{X: x, Y: r.FilteredFlexion})
}

// Close renders and saves the plot.
func (po *PlotObserver) Close() error {
	po.mu.Lock()
	defer po.mu.Unlock()
	if len(po.raw) == 0 {
		return nil
	}

	p := plot.New()
	p.Title.Text = po.title
	p.X.Label.Text = "Sample"
	p.Y.Label.Text = "Flexion angle (deg)"
	p.Add(plotter.NewGrid())
	if err := plotutil.AddLines(p, "flexion", po.raw, "filtered", po.filtered); err != nil {
		return errors.Wrap(err, "failed to add flexion lines")
	}

	if err := os.MkdirAll(filepath.Dir(po.path), 0o750); err != nil {
		return errors.Wrapf(err, "failed to create plot dir for %q", po.path)
	}
	if err := p.Save(10*vg.Inch, 5*vg.Inch, po.path); err != nil {
		return errors.Wrapf(err, "failed to save plot %q", po.path)
	}
	return nil
}
