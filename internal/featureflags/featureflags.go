// internal/featureflags/featureflags.go

// Package featureflags resolves mock-mode configuration from
// environment-shaped string input.
//
// Every flag arrives as a string (or is absent) and is parsed with a fixed
// token table. Mock mode never switches on in a production environment
// unless the override flag is explicitly set.
package featureflags

import (
	"strconv"
	"strings"
	"time"

	"github.com/mwiater/ideamock/internal/logging"
	"github.com/mwiater/ideamock/internal/scenario"
)

// Flag is the environment name of a configuration flag.
type Flag string

const (
	UseMockAPI        Flag = "FF_USE_MOCK_API"
	MockScenario      Flag = "FF_MOCK_SCENARIO"
	MockVariability   Flag = "FF_MOCK_VARIABILITY"
	SimulateLatency   Flag = "FF_SIMULATE_LATENCY"
	MinLatency        Flag = "FF_MIN_LATENCY"
	MaxLatency        Flag = "FF_MAX_LATENCY"
	LogMockRequests   Flag = "FF_LOG_MOCK_REQUESTS"
	StrictValidation  Flag = "FF_STRICT_MOCK_VALIDATION"
	LogPerformance    Flag = "FF_LOG_PERFORMANCE"
	AllowInProduction Flag = "FF_ALLOW_MOCK_IN_PRODUCTION"
	MockCacheTTL      Flag = "FF_MOCK_CACHE_TTL"
	MockRequestLogDB  Flag = "FF_MOCK_REQUEST_LOG_DB"
	AppEnv            Flag = "APP_ENV"
	GoEnv             Flag = "GO_ENV"
)

const (
	defaultMinLatency     = 500
	defaultMaxLatency     = 2000
	defaultCacheTTLMillis = 5 * 60 * 1000
)

var (
	truthy = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}, "y": {}, "t": {}}
	falsy  = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}, "n": {}, "f": {}}
)

// Options controls how a raw flag value is resolved.
type Options struct {
	// Default is used when the raw value is absent or unparseable.
	Default *bool
	// AllowInProduction must be explicitly true for the flag to resolve
	// true in a production environment.
	AllowInProduction *bool
	// Production marks the caller as running in a production-like environment.
	Production bool
}

// Bool returns a pointer to v, for use in Options.
func Bool(v bool) *bool { return &v }

// ParseBool parses raw using the truthy/falsy token table.
func ParseBool(raw string) (value bool, ok bool) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := truthy[token]; ok {
		return true, true
	}
	if _, ok := falsy[token]; ok {
		return false, true
	}
	return false, false
}

// Resolve turns a raw flag value into a boolean. raw may be a string, a
// *string, a bool or nil.
func Resolve(raw any, opts Options) bool {
	if opts.Production && (opts.AllowInProduction == nil || !*opts.AllowInProduction) {
		return false
	}

	switch v := raw.(type) {
	case bool:
		return v
	case *bool:
		if v != nil {
			return *v
		}
	case string:
		if parsed, ok := ParseBool(v); ok {
			return parsed
		}
	case *string:
		if v != nil {
			if parsed, ok := ParseBool(*v); ok {
				return parsed
			}
		}
	}

	if opts.Default != nil {
		return *opts.Default
	}
	return !opts.Production
}

// Settings is the fully resolved mock configuration.
type Settings struct {
	MockMode         bool
	Production       bool
	Scenario         scenario.TestScenario
	Variability      bool
	SimulateLatency  bool
	MinLatency       time.Duration
	MaxLatency       time.Duration
	LogRequests      bool
	StrictValidation bool
	LogPerformance   bool
	CacheTTL         time.Duration
	RequestLogDB     string
}

// Manager resolves flags from a Source. Construct one per process or test.
type Manager struct {
	src        Source
	production bool
}

// NewManager builds a Manager and detects the environment from APP_ENV or GO_ENV.
func NewManager(src Source) *Manager {
	if src == nil {
		src = MapSource{}
	}
	env := strings.TrimSpace(src.GetString(string(AppEnv)))
	if env == "" {
		env = strings.TrimSpace(src.GetString(string(GoEnv)))
	}
	return &Manager{src: src, production: strings.EqualFold(env, "production")}
}

// Production reports whether the environment is production-like.
func (m *Manager) Production() bool { return m.production }

func (m *Manager) raw(flag Flag) any {
	if !m.src.IsSet(string(flag)) {
		return nil
	}
	return m.src.GetString(string(flag))
}

// Bool resolves flag with opts. The manager's environment overrides opts.Production.
func (m *Manager) Bool(flag Flag, opts Options) bool {
	opts.Production = m.production
	return Resolve(m.raw(flag), opts)
}

// String returns the trimmed raw value of flag.
func (m *Manager) String(flag Flag) string {
	return strings.TrimSpace(m.src.GetString(string(flag)))
}

// Int parses flag as a non-negative integer, falling back to def with a warning.
func (m *Manager) Int(flag Flag, def int) int {
	raw := m.String(flag)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		logging.LogWarn("invalid value %q for %s, using %d", raw, flag, def)
		return def
	}
	return n
}

// productionOverride reports whether the production escape hatch is on.
func (m *Manager) productionOverride() bool {
	return Resolve(m.raw(AllowInProduction), Options{Default: Bool(false)})
}

// MockModeEnabled reports whether service calls should route to the mock façade.
func (m *Manager) MockModeEnabled() bool {
	allow := m.productionOverride()
	enabled := m.Bool(UseMockAPI, Options{AllowInProduction: Bool(allow)})
	if m.production && !allow {
		if requested, ok := ParseBool(m.String(UseMockAPI)); ok && requested {
			logging.LogWarn("%s requested in production without %s; mock mode stays disabled", UseMockAPI, AllowInProduction)
		}
	}
	return enabled
}

// Scenario returns the configured scenario, falling back to success.
func (m *Manager) Scenario() scenario.TestScenario {
	return scenario.Normalize(m.String(MockScenario))
}

// Settings resolves every flag at once.
func (m *Manager) Settings() Settings {
	off := Options{Default: Bool(false)}
	if m.productionOverride() {
		off.AllowInProduction = Bool(true)
	}
	return Settings{
		MockMode:         m.MockModeEnabled(),
		Production:       m.production,
		Scenario:         m.Scenario(),
		Variability:      m.Bool(MockVariability, off),
		SimulateLatency:  m.Bool(SimulateLatency, off),
		MinLatency:       time.Duration(m.Int(MinLatency, defaultMinLatency)) * time.Millisecond,
		MaxLatency:       time.Duration(m.Int(MaxLatency, defaultMaxLatency)) * time.Millisecond,
		LogRequests:      m.Bool(LogMockRequests, off),
		StrictValidation: m.Bool(StrictValidation, off),
		LogPerformance:   m.Bool(LogPerformance, off),
		CacheTTL:         time.Duration(m.Int(MockCacheTTL, defaultCacheTTLMillis)) * time.Millisecond,
		RequestLogDB:     m.String(MockRequestLogDB),
	}
}
