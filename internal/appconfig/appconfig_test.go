// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mwiater/ideamock/internal/featureflags"
	"github.com/mwiater/ideamock/internal/scenario"
)

// TestDefaults verifies the accessors fall back to defaults when the config
// leaves a value unset.
func TestDefaults(t *testing.T) {
	var cfg Config
	if cfg.LogFilePath() != DefaultLogFile {
		t.Fatalf("expected default log file, got %q", cfg.LogFilePath())
	}
	if cfg.ReportFilePath() != DefaultReportPath {
		t.Fatalf("expected default report path, got %q", cfg.ReportFilePath())
	}
	if cfg.FixturesDirPath() != "" {
		t.Fatalf("expected embedded fixtures, got %q", cfg.FixturesDirPath())
	}
	if _, ok := cfg.CacheTTL(); ok {
		t.Fatal("expected cache TTL to be left to the feature flag")
	}

	cfg = Config{LogFile: "logs/app.log", ReportPath: "out.json", FixturesDir: "  fx  ", CacheTTLMillis: 1500}
	if cfg.LogFilePath() != "logs/app.log" || cfg.ReportFilePath() != "out.json" || cfg.FixturesDirPath() != "fx" {
		t.Fatalf("unexpected accessors: %+v", cfg)
	}
	if ttl, ok := cfg.CacheTTL(); !ok || ttl != 1500*time.Millisecond {
		t.Fatalf("CacheTTL() = %v, %v", ttl, ok)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	if err := (Config{FixturesDir: dir}).Validate(); err != nil {
		t.Fatalf("Validate() with a real directory failed: %v", err)
	}

	file := filepath.Join(dir, "file.json")
	if err := os.WriteFile(file, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := (Config{FixturesDir: file, CacheTTLMillis: -1}).Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"not a directory", "cacheTTL must not be negative"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}

	if err := (Config{FixturesDir: filepath.Join(dir, "missing")}).Validate(); err == nil {
		t.Fatal("expected error for missing fixtures dir")
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	flags := featureflags.Settings{
		MockMode:     true,
		Scenario:     scenario.RateLimit,
		CacheTTL:     5 * time.Minute,
		RequestLogDB: "requests.db",
	}
	ShowConfig(&buf, "", Config{}, flags)
	out := buf.String()
	for _, want := range []string{
		"No config file loaded",
		"Fixtures:         (embedded)",
		"Cache TTL:        5m0s",
		"Request Log DB:   requests.db",
		"Scenario:         rate_limit",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	ShowConfig(&buf, "config/ideamock.json", Config{CacheTTLMillis: 100}, flags)
	if !strings.Contains(buf.String(), "Config file: config/ideamock.json") || !strings.Contains(buf.String(), "Cache TTL:        100ms") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}
