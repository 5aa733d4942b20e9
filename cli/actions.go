package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/jointkin/config"
	"go.viam.com/jointkin/logging"
	"go.viam.com/jointkin/output"
	"go.viam.com/jointkin/pipeline"
	"go.viam.com/jointkin/utils"
)

// configFromContext reads the config file if one is given, then applies any flag set on the
// command line over it.
func configFromContext(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String(flagConfig); path != "" {
		read, err := config.Read(path)
		if err != nil {
			return nil, err
		}
		cfg = *read
	}

	if c.IsSet(flagSide) {
		cfg.Side = c.String(flagSide)
	}
	if c.IsSet(flagOutput) {
		cfg.OutputDir = c.String(flagOutput)
	}
	if c.IsSet(flagPattern) {
		cfg.TestPattern = c.String(flagPattern)
	}
	if c.IsSet(flagFrame) {
		cfg.Frame = config.FrameMode(c.String(flagFrame))
	}
	if c.IsSet(flagPlot) {
		cfg.Plot = c.Bool(flagPlot)
	}
	if c.Bool(flagNoFilter) {
		cfg.Filter.Enabled = false
	}
	if c.IsSet(flagDebug) {
		cfg.Debug = c.Bool(flagDebug)
	}
	if c.IsSet(flagLogFile) {
		cfg.LogFile = c.String(flagLogFile)
	}

	if err := cfg.Validate("config"); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newLogger returns a logger writing to the app's error writer, and to the config's log file
// when one is set. Its cleanups are registered on guard.
func newLogger(c *cli.Context, cfg *config.Config, guard *utils.Guard) logging.Logger {
	logger := logging.NewBlankLogger("jointkin")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if !cfg.Debug {
		logger.SetLevel(logging.INFO)
	}
	if cfg.LogFile != "" {
		fileAppender := logging.NewFileAppender(cfg.LogFile)
		logger.AddAppender(fileAppender)
		guard.Add(fileAppender.Close)
	}
	guard.Add(logger.Sync)
	return logger
}

// setup parses the config and folder argument of a subject command and builds its pipeline.
// The returned func flushes and closes the logs.
func setup(c *cli.Context) (*pipeline.Pipeline, func() error, error) {
	if c.Args().Len() != 1 {
		return nil, nil, errors.New("expected exactly one subject folder argument")
	}
	cfg, err := configFromContext(c)
	if err != nil {
		return nil, nil, err
	}
	guard := utils.NewGuard()
	defer guard.OnFail()
	logger := newLogger(c, cfg, guard)
	logging.ReplaceGlobal(logger)

	p, err := pipeline.New(c.Context, c.Args().First(), *cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return p, guard.Success(), nil
}

// RunAction is the corresponding action for 'run'.
func RunAction(c *cli.Context) (err error) {
	p, closeLogs, err := setup(c)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, closeLogs())
	}()

	summary, err := p.Run(c.Context)
	if summary != nil {
		fmt.Fprintln(c.App.Writer, summary.String())
	}
	return err
}

// FramesAction is the corresponding action for 'frames'.
func FramesAction(c *cli.Context) (err error) {
	p, closeLogs, err := setup(c)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, closeLogs())
	}()

	fmt.Fprintln(c.App.Writer, output.FrameTable(p.Statics().Frames()))
	return nil
}
