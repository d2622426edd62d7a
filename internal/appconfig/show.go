// internal/appconfig/show.go
package appconfig

import (
	"fmt"
	"io"

	"github.com/mwiater/ideamock/internal/featureflags"
)

// ShowConfig prints the current configuration summary and the resolved mock flags.
func ShowConfig(out io.Writer, file string, cfg Config, flags featureflags.Settings) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fixtures := cfg.FixturesDirPath()
	if fixtures == "" {
		fixtures = "(embedded)"
	}
	requestDB := flags.RequestLogDB
	if cfg.RequestLogDB != "" {
		requestDB = cfg.RequestLogDB
	}
	if requestDB == "" {
		requestDB = "(off)"
	}
	ttl := flags.CacheTTL
	if configured, ok := cfg.CacheTTL(); ok {
		ttl = configured
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:            %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log File:         %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Fixtures:         %s\n", fixtures)
	fmt.Fprintf(out, "  Strict Fixtures:  %v\n", cfg.Strict || flags.StrictValidation)
	fmt.Fprintf(out, "  Cache TTL:        %s\n", ttl)
	fmt.Fprintf(out, "  Request Log DB:   %s\n", requestDB)
	fmt.Fprintf(out, "  Report Path:      %s\n", cfg.ReportFilePath())

	fmt.Fprintln(out, "\nMock flags:")
	fmt.Fprintf(out, "  Mock Mode:        %v\n", flags.MockMode)
	fmt.Fprintf(out, "  Production:       %v\n", flags.Production)
	fmt.Fprintf(out, "  Scenario:         %s\n", flags.Scenario)
	fmt.Fprintf(out, "  Variability:      %v\n", flags.Variability)
	fmt.Fprintf(out, "  Simulate Latency: %v (%s - %s)\n", flags.SimulateLatency, flags.MinLatency, flags.MaxLatency)
	fmt.Fprintf(out, "  Log Requests:     %v\n", flags.LogRequests)
	fmt.Fprintf(out, "  Log Performance:  %v\n", flags.LogPerformance)
}
