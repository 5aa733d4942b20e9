// Package config defines the structures to configure a kinematics run.
package config

import (
	"fmt"

	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/jointkin/anatomy"
	"go.viam.com/jointkin/filter"
)

// FrameMode selects what the per-sample bone rotations are expressed in.
type FrameMode string

const (
	// FrameRelative reports the tibia in the femur frame, the clinical knee angles.
	FrameRelative FrameMode = "relative"
	// FrameGlobal reports each bone in the motion capture frame.
	FrameGlobal FrameMode = "global"
)

// Default values used for every field the config file leaves out.
const (
	DefaultTestPattern = "FE"
	DefaultOutputDir   = "output"
	DefaultFilterOrder = 2
	DefaultCutoffHz    = 6.0
	DefaultSamplingHz  = 100.0
)

// Config describes one processing run over a subject folder.
type Config struct {
	Side        string       `json:"side"`
	TestPattern string       `json:"test_pattern"`
	OutputDir   string       `json:"output_dir"`
	Filter      FilterConfig `json:"filter"`
	Frame       FrameMode    `json:"frame"`
	Plot        bool         `json:"plot"`
	LogFile     string       `json:"log_file"`
	Debug       bool         `json:"debug"`

	ConfigFilePath string `json:"-"`
}

// FilterConfig configures the low-pass filter applied to every output channel.
type FilterConfig struct {
	Enabled    bool    `json:"enabled"`
	Order      int     `json:"order"`
	CutoffHz   float64 `json:"cutoff_hz"`
	SamplingHz float64 `json:"sampling_hz"`
}

// Default returns a config with every default filled in and no side.
func Default() Config {
	return Config{
		TestPattern: DefaultTestPattern,
		OutputDir:   DefaultOutputDir,
		Filter: FilterConfig{
			Enabled:    true,
			Order:      DefaultFilterOrder,
			CutoffHz:   DefaultCutoffHz,
			SamplingHz: DefaultSamplingHz,
		},
		Frame: FrameRelative,
	}
}

// BodySide parses the configured side.
func (c *Config) BodySide() (anatomy.Side, error) {
	return anatomy.ParseSide(c.Side)
}

// Validate ensures all parts of the config are valid.
func (c *Config) Validate(path string) error {
	if c.Side == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "side")
	}
	if _, err := c.BodySide(); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	if c.TestPattern == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "test_pattern")
	}
	if c.OutputDir == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "output_dir")
	}
	switch c.Frame {
	case FrameRelative, FrameGlobal:
	default:
		return utils.NewConfigValidationError(path,
			errors.Errorf("unknown frame %q, valid options are %q or %q", c.Frame, FrameRelative, FrameGlobal))
	}
	return c.Filter.Validate(fmt.Sprintf("%s.filter", path))
}

// Validate ensures the filter can be built when it is enabled.
func (fc *FilterConfig) Validate(path string) error {
	if !fc.Enabled {
		return nil
	}
	if _, err := filter.NewBank(fc.Order, fc.CutoffHz, fc.SamplingHz); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	return nil
}

// NewBank returns the filter bank described by the config, or nil when filtering is disabled.
func (fc *FilterConfig) NewBank() (*filter.Bank, error) {
	if !fc.Enabled {
		return nil, nil
	}
	return filter.NewBank(fc.Order, fc.CutoffHz, fc.SamplingHz)
}
