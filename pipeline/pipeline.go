package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"go.viam.com/jointkin/anatomy"
	"go.viam.com/jointkin/config"
	"go.viam.com/jointkin/ingest"
	"go.viam.com/jointkin/logging"
	"go.viam.com/jointkin/output"
	rf "go.viam.com/jointkin/referenceframe"
	"go.viam.com/jointkin/utils"
)

const flexionChannel = "flexion"

// Pipeline processes the trials of one subject folder.
type Pipeline struct {
	root    string
	outDir  string
	cfg     config.Config
	side    anatomy.Side
	logger  logging.Logger
	statics *Statics
}

// New loads the landmarks of the subject folder root and computes its static poses. The
// config is expected to be validated.
func New(ctx context.Context, root string, cfg config.Config, logger logging.Logger) (*Pipeline, error) {
	side, err := cfg.BodySide()
	if err != nil {
		return nil, err
	}
	lms, err := ingest.LoadLandmarks(root, side)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load landmarks from %q", root)
	}
	for _, bone := range []anatomy.Bone{anatomy.Tibia, anatomy.Femur, anatomy.Patella} {
		if lms.First(bone) != nil {
			logger.Infof("Loaded: %s", bone)
		} else {
			logger.Warnw("landmarks not found", "bone", bone.String())
		}
	}

	statics, err := ComputeStatics(ctx, lms, side, logger)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		root:    root,
		outDir:  filepath.Join(cfg.OutputDir, filepath.Base(filepath.Clean(root))),
		cfg:     cfg,
		side:    side,
		logger:  logger,
		statics: statics,
	}, nil
}

// Statics returns the static poses of the subject.
func (p *Pipeline) Statics() *Statics {
	return p.statics
}

// OutputDir returns the folder trial outputs are written to.
func (p *Pipeline) OutputDir() string {
	return p.outDir
}

// Run processes every trial of the subject folder concurrently and returns their summary.
// A trial without a usable recording is logged and skipped; other per-trial failures are
// combined into the returned error.
func (p *Pipeline) Run(ctx context.Context) (*output.Summary, error) {
	tests, err := ingest.DiscoverTests(p.root, p.cfg.TestPattern)
	if err != nil {
		return nil, err
	}
	if len(tests) == 0 {
		p.logger.Warnw("no trials found", "root", p.root, "pattern", p.cfg.TestPattern)
	}

	summary := &output.Summary{}
	var errMu sync.Mutex
	var combined error

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(utils.ParallelFactor)
	for _, test := range tests {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, ts, err := p.ProcessTest(gctx, test)
			switch {
			case err == nil:
				summary.Add(ts)
			case anatomy.IsMissingData(err):
				p.logger.Warnw("skipping trial", "test", test, "error", err)
			case errors.Is(err, context.Canceled):
				return err
			default:
				errMu.Lock()
				combined = multierr.Combine(combined, errors.Wrapf(err, "trial %q", test))
				errMu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, combined
}

// sample is the outcome of composing one captured instant.
type sample struct {
	tibia rf.CoordinateSystem[rf.Tibia, rf.Global]
	femur rf.CoordinateSystem[rf.Femur, rf.Global]
	err   error
}

func (p *Pipeline) compose(rec *ingest.Recording, idx int) sample {
	pin1, err := rf.FromTrackerSample[rf.Pin1](rec.Pin1, idx)
	if err != nil {
		return sample{err: err}
	}
	tibia, err := rf.Transform(p.statics.TibiaInPin1, pin1, rf.NoOffset)
	if err != nil {
		return sample{err: err}
	}
	pin2, err := rf.FromTrackerSample[rf.Pin2](rec.Pin2, idx)
	if err != nil {
		return sample{err: err}
	}
	femur, err := rf.Transform(p.statics.FemurInPin2, pin2, rf.NoOffset)
	if err != nil {
		return sample{err: err}
	}
	return sample{tibia: tibia, femur: femur}
}

func (p *Pipeline) record(test string, idx int, s sample) output.Record {
	r := output.Record{
		Test:             test,
		Sample:           idx,
		Tibia:            s.tibia.Rotation(p.side),
		Femur:            s.femur.Rotation(p.side),
		TibiaTranslation: s.tibia.Translation(),
		FemurTranslation: s.femur.Translation(),
		Knee:             rf.RelativeRotation(s.tibia, s.femur, p.side),
	}
	switch p.cfg.Frame {
	case config.FrameGlobal:
		r.Flexion = r.Tibia.X - r.Femur.X
	default:
		r.Flexion = r.Knee.X
	}
	return r
}

// ProcessTest computes the records of one trial and writes them to the output folder. Samples
// are composed in parallel, then filtered and written in sample order. Samples missing either
// bone pose are skipped.
func (p *Pipeline) ProcessTest(ctx context.Context, test string) ([]output.Record, output.TestSummary, error) {
	path, err := utils.SafeJoinDir(p.root, test)
	if err != nil {
		return nil, output.TestSummary{}, err
	}
	rec, err := ingest.ReadRecordingFile(path)
	if err != nil {
		return nil, output.TestSummary{}, err
	}
	logger := p.logger.Sublogger(strings.TrimSuffix(test, filepath.Ext(test)))
	defer utils.SlowLogger(ctx, "still processing trial", "test", test, logger)()
	if rec.Unreadable > 0 {
		logger.Warnw("recording has unreadable samples", "count", rec.Unreadable)
	}

	samples := make([]sample, rec.Len())
	if err := utils.GroupWorkParallel(ctx, len(samples), nil,
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			return func(memberNum, workNum int) {
				samples[workNum] = p.compose(rec, workNum)
			}, nil
		},
	); err != nil {
		return nil, output.TestSummary{}, err
	}

	bank, err := p.cfg.Filter.NewBank()
	if err != nil {
		return nil, output.TestSummary{}, err
	}
	records := make([]output.Record, 0, len(samples))
	skipped := 0
	for idx, s := range samples {
		if s.err != nil {
			skipped++
			logger.Debugw("skipping sample", "sample", idx, "error", s.err)
			continue
		}
		r := p.record(test, idx, s)
		r.FilteredFlexion = r.Flexion
		if bank != nil {
			r.FilteredFlexion = bank.Filter(flexionChannel, r.Flexion)
		}
		records = append(records, r)
	}

	if err := p.write(test, records); err != nil {
		return nil, output.TestSummary{}, err
	}
	ts := output.Summarize(test, records, skipped, rec.Unreadable)
	logger.Infow("processed", "rows", ts.Rows, "skipped", ts.Skipped)
	return records, ts, nil
}

func (p *Pipeline) write(test string, records []output.Record) (err error) {
	w, err := output.Create(p.outDir, test)
	if err != nil {
		return err
	}
	obs := output.Observers{}
	if p.cfg.Plot {
		base := strings.TrimSuffix(test, filepath.Ext(test))
		obs = append(obs, output.NewPlotObserver(filepath.Join(p.outDir, base+".png"), base))
	}
	defer func() {
		err = multierr.Combine(err, w.Close(), obs.Close())
		if err != nil {
			utils.RemoveFileNoError(filepath.Join(p.outDir, test))
		}
	}()

	for _, r := range records {
		if err := w.Write(r); err != nil {
			return errors.Wrapf(err, "failed to write %q", test)
		}
		obs.Observe(r)
	}
	return nil
}
