// internal/cli/services.go
package ideamock

import (
	"errors"
	"fmt"
	"os"

	"github.com/mwiater/ideamock/internal/appconfig"
	"github.com/mwiater/ideamock/internal/featureflags"
	"github.com/mwiater/ideamock/internal/fixtures"
	"github.com/mwiater/ideamock/internal/logging"
	"github.com/mwiater/ideamock/internal/metrics"
	"github.com/mwiater/ideamock/internal/mock"
	"github.com/mwiater/ideamock/internal/requestlog"
	"github.com/spf13/viper"
)

var errMockDisabled = errors.New("mock mode is disabled")

// services is everything a command needs to make mock calls.
type services struct {
	flags        featureflags.Settings
	store        *fixtures.Store
	recorder     *metrics.Recorder
	requests     *requestlog.Log
	sink         *requestlog.SQLiteSink
	analysis     *mock.AnalysisService
	frankenstein *mock.FrankensteinService
}

// resolveFlags reads the FF_* flags through viper (flags, config file, env).
func resolveFlags() featureflags.Settings {
	return featureflags.NewManager(featureflags.NewViperSource(viper.GetViper())).Settings()
}

// newStore opens the fixture store described by cfg and flags.
func newStore(cfg appconfig.Config, flags featureflags.Settings, strict bool) *fixtures.Store {
	ttl := flags.CacheTTL
	if configured, ok := cfg.CacheTTL(); ok {
		ttl = configured
	}
	opts := []fixtures.Option{
		fixtures.WithTTL(ttl),
		fixtures.WithStrict(strict),
		fixtures.WithProduction(flags.Production),
	}
	if dir := cfg.FixturesDirPath(); dir != "" {
		return fixtures.New(os.DirFS(dir), opts...)
	}
	return fixtures.New(nil, opts...)
}

// newServices wires the mock services for one CLI invocation.
func newServices(cfg appconfig.Config) (*services, error) {
	flags := resolveFlags()
	if !flags.MockMode {
		return nil, fmt.Errorf("%w: set %s=true (and %s=true in production)", errMockDisabled, featureflags.UseMockAPI, featureflags.AllowInProduction)
	}
	mcfg, err := mock.ConfigFromSettings(flags)
	if err != nil {
		return nil, err
	}

	s := &services{
		flags:    flags,
		store:    newStore(cfg, flags, cfg.Strict || flags.StrictValidation),
		recorder: metrics.NewRecorder(metrics.DefaultWindow),
		requests: requestlog.New(requestlog.DefaultCapacity),
	}

	dbPath := cfg.RequestLogDB
	if dbPath == "" {
		dbPath = flags.RequestLogDB
	}
	if dbPath != "" {
		sink, err := requestlog.OpenSQLite(dbPath)
		if err != nil {
			return nil, err
		}
		s.sink = sink
		s.requests.AddSink(sink)
		logging.LogEvent("[REQUESTS] archiving mock requests to %s", dbPath)
	}

	opts := []mock.Option{mock.WithMetrics(s.recorder), mock.WithRequestLog(s.requests)}
	s.analysis = mock.NewAnalysisService(s.store, mcfg, opts...)
	s.frankenstein = mock.NewFrankensteinService(s.store, mcfg, opts...)
	return s, nil
}

// Close releases the request archive, if any.
func (s *services) Close() error {
	if s == nil {
		return nil
	}
	return s.sink.Close()
}
