// internal/mock/config.go
package mock

import (
	"fmt"
	"strings"
	"time"

	"github.com/mwiater/ideamock/internal/featureflags"
	"github.com/mwiater/ideamock/internal/logging"
	"github.com/mwiater/ideamock/internal/scenario"
)

// Config controls how a mock service behaves.
type Config struct {
	DefaultScenario   scenario.TestScenario
	EnableVariability bool
	SimulateLatency   bool
	MinLatency        time.Duration
	MaxLatency        time.Duration
	LogRequests       bool
	LogPerformance    bool
}

// DefaultConfig returns a success-scenario config with latency off.
func DefaultConfig() Config {
	return Config{
		DefaultScenario: scenario.Success,
		MinLatency:      500 * time.Millisecond,
		MaxLatency:      2000 * time.Millisecond,
	}
}

// NewConfig checks cfg and fills in the scenario when empty.
func NewConfig(cfg Config) (Config, error) {
	var problems []string
	if cfg.DefaultScenario == "" {
		cfg.DefaultScenario = scenario.Success
	} else if sc, ok := scenario.Parse(string(cfg.DefaultScenario)); ok {
		cfg.DefaultScenario = sc
	} else {
		problems = append(problems, fmt.Sprintf("unknown scenario %q (known: %s)", cfg.DefaultScenario, strings.Join(scenario.Names(), ", ")))
	}
	if cfg.MinLatency < 0 || cfg.MaxLatency < 0 {
		problems = append(problems, "latency bounds must not be negative")
	}
	if cfg.MinLatency > cfg.MaxLatency {
		problems = append(problems, fmt.Sprintf("min latency %s exceeds max latency %s", cfg.MinLatency, cfg.MaxLatency))
	}
	if len(problems) > 0 {
		return cfg, fmt.Errorf("invalid mock config: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// ConfigFromSettings builds a Config from resolved feature flags. Negative
// latency bounds become zero and inverted bounds are swapped, with a warning.
func ConfigFromSettings(s featureflags.Settings) (Config, error) {
	lo, hi := s.MinLatency, s.MaxLatency
	if lo < 0 {
		logging.LogWarn("%s=%s is negative, using 0", featureflags.MinLatency, lo)
		lo = 0
	}
	if hi < 0 {
		logging.LogWarn("%s=%s is negative, using 0", featureflags.MaxLatency, hi)
		hi = 0
	}
	if lo > hi {
		logging.LogWarn("%s (%s) exceeds %s (%s), swapping them", featureflags.MinLatency, lo, featureflags.MaxLatency, hi)
		lo, hi = hi, lo
	}
	return NewConfig(Config{
		DefaultScenario:   s.Scenario,
		EnableVariability: s.Variability,
		SimulateLatency:   s.SimulateLatency,
		MinLatency:        lo,
		MaxLatency:        hi,
		LogRequests:       s.LogRequests,
		LogPerformance:    s.LogPerformance,
	})
}
