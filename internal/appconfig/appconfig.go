// internal/appconfig/appconfig.go
// Package appconfig holds the CLI configuration materialised from the config
// file, flags and environment.
package appconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the config file read when --config is not given.
	DefaultConfigPath = "config/ideamock.json"
	// DefaultLogFile is the log file used when none is configured.
	DefaultLogFile = "ideamock.log"
	// DefaultReportPath is where `stats --report` writes when no path is given.
	DefaultReportPath = "reports/mock_performance.json"
)

// Config represents the top-level application configuration.
type Config struct {
	FixturesDir    string `json:"fixturesDir,omitempty" mapstructure:"fixturesDir"`
	LogFile        string `json:"logFile,omitempty" mapstructure:"logFile"`
	RequestLogDB   string `json:"requestLogDB,omitempty" mapstructure:"requestLogDB"`
	CacheTTLMillis int    `json:"cacheTTL,omitempty" mapstructure:"cacheTTL"`
	ReportPath     string `json:"reportPath,omitempty" mapstructure:"reportPath"`
	Debug          bool   `json:"debug" mapstructure:"debug"`
	Strict         bool   `json:"strict" mapstructure:"strict"`
	ConfigPath     string `json:"-" mapstructure:"-"`
}

// FixturesDirPath returns the fixture directory, or "" to use the embedded fixtures.
func (c Config) FixturesDirPath() string {
	return strings.TrimSpace(c.FixturesDir)
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return DefaultLogFile
}

// ReportFilePath returns the performance report path, applying a default if not set.
func (c Config) ReportFilePath() string {
	if path := strings.TrimSpace(c.ReportPath); path != "" {
		return path
	}
	return DefaultReportPath
}

// CacheTTL returns the configured fixture cache TTL. ok is false when the
// config leaves it to the FF_MOCK_CACHE_TTL flag.
func (c Config) CacheTTL() (ttl time.Duration, ok bool) {
	if c.CacheTTLMillis <= 0 {
		return 0, false
	}
	return time.Duration(c.CacheTTLMillis) * time.Millisecond, true
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	var errs []error
	if dir := c.FixturesDirPath(); dir != "" {
		info, err := os.Stat(dir)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("fixturesDir %q: %w", dir, err))
		case !info.IsDir():
			errs = append(errs, fmt.Errorf("fixturesDir %q is not a directory", dir))
		}
	}
	if c.CacheTTLMillis < 0 {
		errs = append(errs, fmt.Errorf("cacheTTL must not be negative, got %d", c.CacheTTLMillis))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
