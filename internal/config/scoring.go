package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aeolab/beacon/internal/visibility"
)

const EnvScoringContextWindow = "BEACON_SCORING_CONTEXT_WINDOW"

// ScoringConfig holds the visibility score table and context extraction
// settings. Score keys are visibility status names; omitted statuses fall
// back to the built-in table.
type ScoringConfig struct {
	ContextWindow int            `toml:"context_window"`
	Scores        map[string]int `toml:"scores"`
}

// Visibility returns the classifier configuration.
func (c *ScoringConfig) Visibility() visibility.Config {
	scores := make(map[visibility.Status]int, len(c.Scores))
	for name, score := range c.Scores {
		scores[visibility.Status(name)] = score
	}
	return visibility.Config{
		Scores:        scores,
		ContextWindow: c.ContextWindow,
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ScoringConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Overlay scores are merged
// per status rather than replacing the table.
func (c *ScoringConfig) Merge(overlay *ScoringConfig) {
	if overlay.ContextWindow != 0 {
		c.ContextWindow = overlay.ContextWindow
	}
	if len(overlay.Scores) > 0 {
		if c.Scores == nil {
			c.Scores = make(map[string]int)
		}
		for name, score := range overlay.Scores {
			c.Scores[name] = score
		}
	}
}

func (c *ScoringConfig) loadDefaults() {
	if c.ContextWindow == 0 {
		c.ContextWindow = 200
	}
	if c.Scores == nil {
		c.Scores = make(map[string]int)
	}
	for status, score := range visibility.DefaultScores() {
		if _, ok := c.Scores[string(status)]; !ok {
			c.Scores[string(status)] = score
		}
	}
}

func (c *ScoringConfig) loadEnv() {
	if v := os.Getenv(EnvScoringContextWindow); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ContextWindow = n
		}
	}
}

func (c *ScoringConfig) validate() error {
	for name := range c.Scores {
		known := false
		for _, status := range visibility.Statuses() {
			if name == string(status) {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown score status: %s", name)
		}
	}
	if err := c.Visibility().Validate(); err != nil {
		return err
	}
	return nil
}
