// Package cli contains the jointkin command line interface.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	flagConfig   = "config"
	flagSide     = "side"
	flagOutput   = "output"
	flagPattern  = "pattern"
	flagFrame    = "frame"
	flagPlot     = "plot"
	flagNoFilter = "no-filter"
	flagDebug    = "debug"
	flagLogFile  = "log-file"
)

var subjectFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    flagSide,
		Aliases: []string{"s"},
		Usage:   "body side of the subject, l/left or r/right",
	},
	&cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage:   "write trial outputs under `DIR`",
	},
	&cli.StringFlag{
		Name:  flagPattern,
		Usage: "process every trial file whose name contains `PATTERN`",
	},
	&cli.StringFlag{
		Name:  flagFrame,
		Usage: "report flexion from the relative knee angles or the difference of global bone angles (relative, global)",
	},
}

var app = &cli.App{
	Name:            "jointkin",
	Usage:           "compute knee kinematics from digitized landmarks and tracker recordings",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "load configuration from `FILE`",
		},
		&cli.BoolFlag{
			Name:    flagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
		&cli.StringFlag{
			Name:  flagLogFile,
			Usage: "also write logs to rotating `FILE`",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "run",
			Usage:     "process every trial of a subject folder",
			ArgsUsage: "<folder>",
			Flags: append([]cli.Flag{
				&cli.BoolFlag{
					Name:  flagPlot,
					Usage: "save a flexion plot next to each trial output",
				},
				&cli.BoolFlag{
					Name:  flagNoFilter,
					Usage: "write unfiltered flexion only",
				},
			}, subjectFlags...),
			Action: RunAction,
		},
		{
			Name:      "frames",
			Usage:     "print the static bone and bone in tracker frames of a subject folder",
			ArgsUsage: "<folder>",
			Flags:     subjectFlags,
			Action:    FramesAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
