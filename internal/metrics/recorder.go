// internal/metrics/recorder.go

// Package metrics keeps a rolling window of call durations per service method
// and summarises them for the CLI and JSON reports.
package metrics

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/mwiater/ideamock/internal/logging"
	"github.com/mwiater/ideamock/internal/util"
)

// DefaultWindow is how many samples are kept per method.
const DefaultWindow = 1000

// Recorder collects call durations. The oldest sample is evicted once a
// method's window is full.
type Recorder struct {
	mutex   sync.Mutex
	window  int
	samples map[string][]time.Duration
	now     func() time.Time
}

// NewRecorder creates a recorder. A non-positive window means DefaultWindow.
func NewRecorder(window int) *Recorder {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Recorder{
		window:  window,
		samples: make(map[string][]time.Duration),
		now:     time.Now,
	}
}

// Window returns the per-method capacity.
func (r *Recorder) Window() int {
	return r.window
}

// Record appends one sample for method.
func (r *Recorder) Record(method string, d time.Duration) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	s := append(r.samples[method], d)
	if over := len(s) - r.window; over > 0 {
		s = append(s[:0:0], s[over:]...)
	}
	r.samples[method] = s
}

// Samples returns a copy of the retained samples for method, oldest first.
func (r *Recorder) Samples(method string) []time.Duration {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]time.Duration(nil), r.samples[method]...)
}

// Snapshot returns a copy of every method's samples.
func (r *Recorder) Snapshot() map[string][]time.Duration {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	out := make(map[string][]time.Duration, len(r.samples))
	for method, s := range r.samples {
		out[method] = append([]time.Duration(nil), s...)
	}
	return out
}

// Reset drops every sample.
func (r *Recorder) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.samples = make(map[string][]time.Duration)
}

// Summary aggregates the samples for one method. ok is false when the
// method has no samples.
func (r *Recorder) Summary(method string) (MethodSummary, bool) {
	samples := r.Samples(method)
	if len(samples) == 0 {
		return MethodSummary{Method: method}, false
	}
	return summarize(method, samples), true
}

// Summaries aggregates every method, sorted by method name.
func (r *Recorder) Summaries() []MethodSummary {
	snap := r.Snapshot()
	methods := make([]string, 0, len(snap))
	for m := range snap {
		methods = append(methods, m)
	}
	sort.Strings(methods)

	out := make([]MethodSummary, 0, len(methods))
	for _, m := range methods {
		if len(snap[m]) == 0 {
			continue
		}
		out = append(out, summarize(m, snap[m]))
	}
	return out
}

// SaveReport writes the current summaries to path as indented JSON.
func (r *Recorder) SaveReport(path string) error {
	logging.LogEvent("[METRICS] Saving performance report to %s", path)
	report := Report{
		GeneratedUTC: r.now().UTC(),
		Window:       r.window,
		Methods:      r.Summaries(),
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal performance report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := util.WriteFile(path, data); err != nil {
		return fmt.Errorf("write performance report: %w", err)
	}
	return nil
}

func summarize(method string, samples []time.Duration) MethodSummary {
	var rs RunningStat
	for _, d := range samples {
		updateRunningStat(&rs, float64(d)/float64(time.Millisecond))
	}
	if rs.Count > 1 {
		rs.StdDev = math.Sqrt(rs.M2 / float64(rs.Count-1))
	}
	return MethodSummary{Method: method, Count: len(samples), Stats: rs}
}

// updateRunningStat updates a single running statistic using Welford's online algorithm.
func updateRunningStat(rs *RunningStat, value float64) {
	rs.Count++
	rs.Total += value
	if rs.Count == 1 {
		rs.Min = value
		rs.Max = value
	} else {
		if value < rs.Min {
			rs.Min = value
		}
		if value > rs.Max {
			rs.Max = value
		}
	}

	delta := value - rs.Mean
	rs.Mean += delta / float64(rs.Count)
	delta2 := value - rs.Mean
	rs.M2 += delta * delta2
}
