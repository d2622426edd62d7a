// internal/mock/service.go

// Package mock implements the ai service contracts with fixture-backed
// responses. Each call can simulate latency, inject the configured failure
// scenario, and records its duration and an optional request-log entry.
package mock

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/mwiater/ideamock/internal/ai"
	"github.com/mwiater/ideamock/internal/customize"
	"github.com/mwiater/ideamock/internal/fixtures"
	"github.com/mwiater/ideamock/internal/logging"
	"github.com/mwiater/ideamock/internal/metrics"
	"github.com/mwiater/ideamock/internal/requestlog"
	"github.com/mwiater/ideamock/internal/scenario"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option customises a service.
type Option func(*core)

// WithMetrics shares a metrics recorder between services.
func WithMetrics(r *metrics.Recorder) Option {
	return func(c *core) {
		if r != nil {
			c.metrics = r
		}
	}
}

// WithRequestLog shares a request log between services.
func WithRequestLog(l *requestlog.Log) Option {
	return func(c *core) {
		if l != nil {
			c.requests = l
		}
	}
}

// WithSleep replaces the latency timer.
func WithSleep(fn SleepFunc) Option {
	return func(c *core) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

// WithRand sets the random source used to pick latencies.
func WithRand(r *rand.Rand) Option {
	return func(c *core) {
		if r != nil {
			c.rng = r
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// core is the state shared by both services.
type core struct {
	store    *fixtures.Store
	cfg      Config
	metrics  *metrics.Recorder
	requests *requestlog.Log
	sleep    SleepFunc

	rngMu sync.Mutex
	rng   *rand.Rand
}

func newCore(store *fixtures.Store, cfg Config, opts []Option) *core {
	if store == nil {
		store = fixtures.New(nil)
	}
	if cfg.DefaultScenario == "" {
		cfg.DefaultScenario = scenario.Success
	}
	c := &core{
		store:    store,
		cfg:      cfg,
		metrics:  metrics.NewRecorder(metrics.DefaultWindow),
		requests: requestlog.New(requestlog.DefaultCapacity),
		sleep:    sleepContext,
		rng:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call is the lifecycle shared by every operation once its input is valid.
func (c *core) call(ctx context.Context, method string, t fixtures.ResponseType, params map[string]any, cctx customize.Context) (map[string]any, error) {
	sc := c.cfg.DefaultScenario
	if c.cfg.LogRequests {
		logging.LogRequest(method, string(sc), params)
	}

	start := time.Now()
	data, status, err := c.execute(ctx, t, sc, cctx)
	c.record(ctx, method, sc, params, time.Since(start), status, err)
	return data, err
}

func (c *core) execute(ctx context.Context, t fixtures.ResponseType, sc scenario.TestScenario, cctx customize.Context) (map[string]any, int, error) {
	if c.cfg.SimulateLatency {
		if err := c.sleep(ctx, c.latency()); err != nil {
			return nil, 0, err
		}
	}

	if sc.IsFailure() {
		serr := c.synthesize(t, sc, cctx)
		return nil, serr.StatusCode, serr
	}

	v, err := c.fetch(t, sc)
	if err != nil {
		return nil, 500, fmt.Errorf("load %s fixture: %w", t, err)
	}
	if c.cfg.SimulateLatency && v.Delay != nil {
		if err := c.sleep(ctx, time.Duration(*v.Delay)*time.Millisecond); err != nil {
			return nil, 0, err
		}
	}

	out := customize.Customize(v, t, cctx)
	if out.IsError() {
		serr := errorFromData(sc, out.StatusCode, out.Data)
		return nil, serr.StatusCode, serr
	}
	return out.Data, out.StatusCode, nil
}

func (c *core) fetch(t fixtures.ResponseType, sc scenario.TestScenario) (fixtures.Variant, error) {
	if c.cfg.EnableVariability {
		return c.store.GetRandomVariant(t, sc)
	}
	return c.store.GetResponse(t, sc)
}

// latency picks a uniform duration in [MinLatency, MaxLatency].
func (c *core) latency() time.Duration {
	lo, hi := c.cfg.MinLatency, c.cfg.MaxLatency
	if hi <= lo {
		return lo
	}
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	return lo + time.Duration(c.rng.Int64N(int64(hi-lo)+1))
}

// synthesize builds the failure for sc, preferring the message stored in the
// scenario's fixture over the built-in default. Fixture lookups here do not
// count as cache hits or misses.
func (c *core) synthesize(t fixtures.ResponseType, sc scenario.TestScenario, cctx customize.Context) *ServiceError {
	outcome := sc.Outcome()
	serr := &ServiceError{
		Code:       outcome.Code,
		StatusCode: outcome.StatusCode,
		Message:    outcome.Message,
		Scenario:   sc,
	}
	if v, err := c.store.PeekResponse(t, sc); err == nil && v.IsError() {
		if msg, ok := v.Data["message"].(string); ok && msg != "" {
			serr.Message = msg
		}
		if code, ok := v.Data["code"].(string); ok && code != "" && code != serr.Code {
			serr.Detail = code
		}
		serr.RetryAfter = retryAfter(v.Data["retryAfter"])
	}
	if sc == scenario.RateLimit && serr.RetryAfter == 0 {
		serr.RetryAfter = defaultRetryAfter
	}
	if sc == scenario.PartialResponse {
		if v, err := c.store.PeekResponse(t, scenario.Success); err == nil {
			serr.Partial = truncatePayload(customize.Customize(v, t, cctx).Data)
		}
	}
	return serr
}

// errorFromData turns an error-shaped success fixture into a failure. Only
// known scenario codes are kept as Code; anything else becomes API_ERROR
// with the fixture's code as Detail.
func errorFromData(sc scenario.TestScenario, status int, data map[string]any) *ServiceError {
	serr := &ServiceError{StatusCode: status, Scenario: sc, Code: scenario.APIError.Outcome().Code}
	serr.Message, _ = data["message"].(string)
	if code, _ := data["code"].(string); code != "" {
		if _, known := codeSentinels[code]; known {
			serr.Code = code
		} else {
			serr.Detail = code
		}
	}
	serr.RetryAfter = retryAfter(data["retryAfter"])
	return serr
}

func retryAfter(v any) time.Duration {
	switch n := v.(type) {
	case float64:
		return time.Duration(n * float64(time.Second))
	case int:
		return time.Duration(n) * time.Second
	default:
		return 0
	}
}

// truncatePayload keeps the first half of the top-level fields in key order.
func truncatePayload(data map[string]any) map[string]any {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	keep := (len(keys) + 1) / 2
	out := make(map[string]any, keep)
	for _, k := range keys[:keep] {
		out[k] = data[k]
	}
	return out
}

func (c *core) record(ctx context.Context, method string, sc scenario.TestScenario, params map[string]any, elapsed time.Duration, status int, err error) {
	c.metrics.Record(method, elapsed)
	if c.cfg.LogPerformance {
		logging.LogEvent("[PERF] %s scenario=%s took %dms", method, sc, elapsed.Milliseconds())
	}
	if !c.cfg.LogRequests {
		return
	}
	entry := requestlog.Entry{
		Method:     method,
		Scenario:   string(sc),
		Params:     params,
		DurationMs: elapsed.Milliseconds(),
		StatusCode: status,
		Success:    err == nil,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	c.requests.Add(ctx, entry)
}

func (c *core) health() ai.HealthStatus {
	sc := c.cfg.DefaultScenario
	return ai.HealthStatus{
		Status:    string(sc.Health()),
		Scenario:  string(sc),
		Mock:      true,
		CheckedAt: time.Now().UTC(),
	}
}

// RequestLogs returns the retained request-log entries, oldest first.
func (c *core) RequestLogs() []requestlog.Entry {
	return c.requests.Entries()
}

// PerformanceMetrics returns the retained call durations per method.
func (c *core) PerformanceMetrics() map[string][]time.Duration {
	return c.metrics.Snapshot()
}

// ClearLogs drops the request log and the performance samples.
func (c *core) ClearLogs() {
	c.requests.Clear()
	c.metrics.Reset()
}

// Config returns the service configuration.
func (c *core) Config() Config {
	return c.cfg
}
