package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aeolab/beacon/internal/experiments"
)

const (
	EnvExperimentsControlPeriodDays = "BEACON_EXPERIMENTS_CONTROL_PERIOD_DAYS"
	EnvExperimentsTestPeriodDays    = "BEACON_EXPERIMENTS_TEST_PERIOD_DAYS"
	EnvExperimentsMinSamples        = "BEACON_EXPERIMENTS_MIN_SAMPLES"
)

// ExperimentsConfig holds experiment lifecycle parameters.
type ExperimentsConfig struct {
	ControlPeriodDays int `toml:"control_period_days"`
	TestPeriodDays    int `toml:"test_period_days"`
	MinSamples        int `toml:"min_samples"`
}

// Experiments returns the domain configuration.
func (c *ExperimentsConfig) Experiments() experiments.Config {
	return experiments.Config{
		ControlPeriodDays: c.ControlPeriodDays,
		TestPeriodDays:    c.TestPeriodDays,
		MinSamples:        c.MinSamples,
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ExperimentsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ExperimentsConfig) Merge(overlay *ExperimentsConfig) {
	if overlay.ControlPeriodDays != 0 {
		c.ControlPeriodDays = overlay.ControlPeriodDays
	}
	if overlay.TestPeriodDays != 0 {
		c.TestPeriodDays = overlay.TestPeriodDays
	}
	if overlay.MinSamples != 0 {
		c.MinSamples = overlay.MinSamples
	}
}

func (c *ExperimentsConfig) loadDefaults() {
	if c.ControlPeriodDays == 0 {
		c.ControlPeriodDays = 14
	}
	if c.TestPeriodDays == 0 {
		c.TestPeriodDays = 28
	}
	if c.MinSamples == 0 {
		c.MinSamples = 5
	}
}

func (c *ExperimentsConfig) loadEnv() {
	setInt := func(envVar string, target *int) {
		if v := os.Getenv(envVar); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*target = n
			}
		}
	}

	setInt(EnvExperimentsControlPeriodDays, &c.ControlPeriodDays)
	setInt(EnvExperimentsTestPeriodDays, &c.TestPeriodDays)
	setInt(EnvExperimentsMinSamples, &c.MinSamples)
}

func (c *ExperimentsConfig) validate() error {
	if c.ControlPeriodDays < 1 {
		return fmt.Errorf("invalid control_period_days: %d", c.ControlPeriodDays)
	}
	if c.TestPeriodDays < 1 {
		return fmt.Errorf("invalid test_period_days: %d", c.TestPeriodDays)
	}
	if c.MinSamples < 1 {
		return fmt.Errorf("invalid min_samples: %d", c.MinSamples)
	}
	return nil
}
