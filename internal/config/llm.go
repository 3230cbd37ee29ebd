package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aeolab/beacon/internal/llm"
)

const (
	EnvLLMCallTimeout = "BEACON_LLM_CALL_TIMEOUT"
	EnvLLMParallelism = "BEACON_LLM_PARALLELISM"
)

// LLMProviderConfig describes one answer engine entry. APIKeyEnv names the
// environment variable holding the credential; the key itself never lives in
// a config file.
type LLMProviderConfig struct {
	Key       string `toml:"key"`
	Model     string `toml:"model"`
	APIKeyEnv string `toml:"api_key_env"`
	BaseURL   string `toml:"base_url"`
}

// LLMConfig holds answer engine settings: the provider roster, the per-call
// timeout, and how many provider calls a batch run may issue concurrently.
type LLMConfig struct {
	CallTimeout string              `toml:"call_timeout"`
	Parallelism int                 `toml:"parallelism"`
	Providers   []LLMProviderConfig `toml:"providers"`
}

// CallTimeoutDuration returns CallTimeout as a time.Duration.
func (c *LLMConfig) CallTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.CallTimeout)
	return d
}

// ProviderConfigs resolves each provider's API key from its environment
// variable and returns the registry construction slice.
func (c *LLMConfig) ProviderConfigs() []llm.ProviderConfig {
	configs := make([]llm.ProviderConfig, 0, len(c.Providers))
	for _, p := range c.Providers {
		apiKey := ""
		if p.APIKeyEnv != "" {
			apiKey = os.Getenv(p.APIKeyEnv)
		}
		configs = append(configs, llm.ProviderConfig{
			Key:     p.Key,
			Model:   p.Model,
			APIKey:  apiKey,
			BaseURL: p.BaseURL,
		})
	}
	return configs
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *LLMConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. A non-empty overlay provider
// roster replaces the base roster wholesale.
func (c *LLMConfig) Merge(overlay *LLMConfig) {
	if overlay.CallTimeout != "" {
		c.CallTimeout = overlay.CallTimeout
	}
	if overlay.Parallelism != 0 {
		c.Parallelism = overlay.Parallelism
	}
	if len(overlay.Providers) > 0 {
		c.Providers = overlay.Providers
	}
}

func (c *LLMConfig) loadDefaults() {
	if c.CallTimeout == "" {
		c.CallTimeout = "45s"
	}
	if c.Parallelism == 0 {
		c.Parallelism = 4
	}
	if len(c.Providers) == 0 {
		c.Providers = []LLMProviderConfig{
			{Key: "openai", Model: "gpt-4o-mini", APIKeyEnv: "OPENAI_API_KEY"},
			{Key: "anthropic", Model: "claude-3-5-haiku-latest", APIKeyEnv: "ANTHROPIC_API_KEY"},
			{
				Key:       "gemini",
				Model:     "gemini-2.0-flash",
				APIKeyEnv: "GEMINI_API_KEY",
				BaseURL:   "https://generativelanguage.googleapis.com/v1beta/openai/",
			},
			{Key: "mock", Model: "mock-1"},
		}
	}
}

func (c *LLMConfig) loadEnv() {
	if v := os.Getenv(EnvLLMCallTimeout); v != "" {
		c.CallTimeout = v
	}
	if v := os.Getenv(EnvLLMParallelism); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Parallelism = n
		}
	}
}

func (c *LLMConfig) validate() error {
	if _, err := time.ParseDuration(c.CallTimeout); err != nil {
		return fmt.Errorf("invalid call_timeout: %w", err)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("invalid parallelism: %d", c.Parallelism)
	}

	seen := make(map[string]bool)
	for _, p := range c.Providers {
		if p.Key == "" {
			return fmt.Errorf("provider key required")
		}
		if seen[p.Key] {
			return fmt.Errorf("duplicate provider key: %s", p.Key)
		}
		seen[p.Key] = true
	}
	return nil
}
