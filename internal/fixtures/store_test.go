// internal/fixtures/store_test.go
package fixtures

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mwiater/ideamock/internal/scenario"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 10, 31, 12, 0, 0, 0, time.UTC)}
}

const sparseAnalyzer = `{
  "scenarios": {
    "success": [
      {"statusCode": 200, "data": {"finalScore": 3, "finalScoreExplanation": "ok", "detailedSummary": "This idea works.", "scoringRubric": [{"name": "Demand", "score": 3, "justification": "fine"}]}}
    ],
    "timeout": [
      {"statusCode": 408, "data": {"error": "timeout", "message": "slow"}}
    ],
    "rate_limit": []
  }
}`

const invalidAnalyzer = `{
  "scenarios": {
    "success": [
      {"statusCode": 200, "data": {"finalScore": 9, "detailedSummary": "missing fields"}}
    ]
  }
}`

func TestGetResponseIsDeterministicAndCached(t *testing.T) {
	s := New(nil, WithTTL(0))

	first, err := s.GetResponse(Analyzer, scenario.Success)
	if err != nil {
		t.Fatalf("GetResponse: %v", err)
	}
	second, err := s.GetResponse(Analyzer, scenario.Success)
	if err != nil {
		t.Fatalf("GetResponse: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("responses differ (-first +second):\n%s", diff)
	}
	stats := s.CacheStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Entries != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestGetResponseReturnsCopies(t *testing.T) {
	s := New(nil)
	v, err := s.GetResponse(Frankenstein, scenario.Success)
	if err != nil {
		t.Fatalf("GetResponse: %v", err)
	}
	v.Data["idea_title"] = "mutated"
	v.Data["metrics"].(map[string]any)["wow_factor"] = float64(0)

	again, err := s.GetResponse(Frankenstein, scenario.Success)
	if err != nil {
		t.Fatalf("GetResponse: %v", err)
	}
	if again.Data["idea_title"] == "mutated" {
		t.Fatal("cached entry was mutated through a returned variant")
	}
	if again.Data["metrics"].(map[string]any)["wow_factor"] == float64(0) {
		t.Fatal("nested cached data was mutated through a returned variant")
	}
}

func TestCacheHitRateWithTTLZero(t *testing.T) {
	s := New(nil, WithTTL(0))
	for i := 0; i < 10; i++ {
		if _, err := s.GetResponse(Analyzer, scenario.Success); err != nil {
			t.Fatalf("GetResponse: %v", err)
		}
	}
	stats := s.CacheStats()
	if stats.Hits != 9 || stats.Misses != 1 {
		t.Fatalf("expected 9 hits and 1 miss, got %+v", stats)
	}
	if stats.HitRate() != 0.9 {
		t.Fatalf("expected hit rate 0.9, got %v", stats.HitRate())
	}
}

func TestCacheTTL(t *testing.T) {
	clock := newFakeClock()
	s := New(nil, WithTTL(100*time.Millisecond), WithClock(clock.Now))

	if _, err := s.GetResponse(Hackathon, scenario.Success); err != nil {
		t.Fatalf("GetResponse: %v", err)
	}
	clock.Advance(50 * time.Millisecond)
	if _, err := s.GetResponse(Hackathon, scenario.Success); err != nil {
		t.Fatalf("GetResponse: %v", err)
	}
	if stats := s.CacheStats(); stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("expected hit at 50ms, got %+v", stats)
	}

	clock.Advance(100 * time.Millisecond)
	if removed := s.InvalidateExpiredCache(); removed != 1 {
		t.Fatalf("expected 1 expired entry removed, got %d", removed)
	}
	if _, err := s.GetResponse(Hackathon, scenario.Success); err != nil {
		t.Fatalf("GetResponse: %v", err)
	}
	if stats := s.CacheStats(); stats.Hits != 1 || stats.Misses != 2 {
		t.Fatalf("expected miss at 150ms, got %+v", stats)
	}
}

func TestCacheTTLMissWithoutSweep(t *testing.T) {
	clock := newFakeClock()
	s := New(nil, WithTTL(100*time.Millisecond), WithClock(clock.Now))

	_, _ = s.GetResponse(Analyzer, scenario.Success)
	clock.Advance(150 * time.Millisecond)
	_, _ = s.GetResponse(Analyzer, scenario.Success)
	if stats := s.CacheStats(); stats.Misses != 2 || stats.Hits != 0 {
		t.Fatalf("expected expired entry to miss, got %+v", stats)
	}
}

func TestInvalidateExpiredCacheNoopForTTLZero(t *testing.T) {
	clock := newFakeClock()
	s := New(nil, WithTTL(0), WithClock(clock.Now))
	_, _ = s.GetResponse(Analyzer, scenario.Success)
	clock.Advance(24 * time.Hour)
	if removed := s.InvalidateExpiredCache(); removed != 0 {
		t.Fatalf("expected no removals with ttl 0, got %d", removed)
	}
}

func TestGetRandomVariantBypassesCounters(t *testing.T) {
	s := New(nil, WithRand(rand.New(rand.NewPCG(1, 2))))
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		v, err := s.GetRandomVariant(Frankenstein, scenario.Success)
		if err != nil {
			t.Fatalf("GetRandomVariant: %v", err)
		}
		seen[v.Data["idea_title"].(string)] = true
	}
	if len(seen) != 2 {
		t.Fatalf("expected both success variants to be picked, saw %v", seen)
	}
	if stats := s.CacheStats(); stats.Hits != 0 || stats.Misses != 0 || stats.Entries != 0 {
		t.Fatalf("random lookups must not touch the cache: %+v", stats)
	}
}

func TestEmbeddedFixturesCoverEveryScenario(t *testing.T) {
	s := New(nil, WithStrict(true))
	for _, rt := range []ResponseType{Analyzer, Hackathon, Frankenstein} {
		for _, sc := range scenario.All() {
			v, err := s.GetResponse(rt, sc)
			if err != nil {
				t.Fatalf("%s/%s: %v", rt, sc, err)
			}
			if sc.IsFailure() != v.IsError() {
				t.Fatalf("%s/%s: unexpected payload shape %+v", rt, sc, v.Data)
			}
		}
		results, err := s.ValidateAll(rt)
		if err != nil {
			t.Fatalf("ValidateAll(%s): %v", rt, err)
		}
		for _, r := range results {
			if r.Failed() != 0 {
				t.Fatalf("%s/%s has invalid variants: %+v", rt, r.Scenario, r.Variants)
			}
		}
	}
}

func TestMissingScenarioListsAvailable(t *testing.T) {
	s := New(fstest.MapFS{"analyzer-responses.json": {Data: []byte(sparseAnalyzer)}})

	_, err := s.GetResponse(Analyzer, scenario.RateLimit)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "available scenarios: success, timeout") {
		t.Fatalf("expected available scenarios in message, got %v", err)
	}

	scenarios, err := s.Scenarios(Analyzer)
	if err != nil {
		t.Fatalf("Scenarios: %v", err)
	}
	if diff := cmp.Diff([]string{"success", "timeout"}, scenarios); diff != "" {
		t.Fatalf("unexpected scenarios (-want +got):\n%s", diff)
	}
}

func TestMissingFixtureFileNamesResource(t *testing.T) {
	s := New(fstest.MapFS{})
	_, err := s.GetResponse(Hackathon, scenario.Success)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "hackathon-responses.json") {
		t.Fatalf("expected file name in error, got %v", err)
	}
}

func TestStrictModeRejectsInvalidFixtures(t *testing.T) {
	fsys := fstest.MapFS{"analyzer-responses.json": {Data: []byte(invalidAnalyzer)}}

	strict := New(fsys, WithStrict(true))
	_, err := strict.GetResponse(Analyzer, scenario.Success)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "success[0]") {
		t.Fatalf("expected variant index in error, got %v", err)
	}

	lenient := New(fsys)
	v, err := lenient.GetResponse(Analyzer, scenario.Success)
	if err != nil {
		t.Fatalf("lenient store should still serve invalid data: %v", err)
	}
	if v.Data["finalScore"] != float64(9) {
		t.Fatalf("unexpected data: %+v", v.Data)
	}

	prod := New(fsys, WithStrict(true), WithProduction(true))
	if _, err := prod.GetResponse(Analyzer, scenario.Success); err != nil {
		t.Fatalf("production store skips validation, got %v", err)
	}
}

const undecodableAnalyzer = `{
  "scenarios": {
    "success": [
      {"statusCode": 200, "data": {"finalScore": 3, "finalScoreExplanation": "ok", "detailedSummary": "This idea works.", "scoringRubric": [{"name": "Demand", "score": 3, "justification": "fine"}]}},
      {"statusCode": 200, "data": "oops"},
      {"statusCode": "two hundred", "data": {"finalScore": 2}}
    ]
  }
}`

func TestLenientStoreSkipsUndecodableVariants(t *testing.T) {
	fsys := fstest.MapFS{"analyzer-responses.json": {Data: []byte(undecodableAnalyzer)}}

	s := New(fsys)
	v, err := s.GetResponse(Analyzer, scenario.Success)
	if err != nil {
		t.Fatalf("lenient store should load the decodable variants: %v", err)
	}
	if v.Data["detailedSummary"] != "This idea works." {
		t.Fatalf("unexpected variant: %+v", v.Data)
	}
	file, err := s.File(Analyzer)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if n := len(file.Scenarios["success"]); n != 1 {
		t.Fatalf("expected 1 usable variant, got %d", n)
	}

	strict := New(fsys, WithStrict(true))
	if _, err := strict.GetResponse(Analyzer, scenario.Success); !errors.Is(err, ErrValidation) {
		t.Fatalf("strict store: expected ErrValidation, got %v", err)
	}
}

func TestValidateAllReportsUndecodableVariants(t *testing.T) {
	s := New(fstest.MapFS{"analyzer-responses.json": {Data: []byte(undecodableAnalyzer)}})

	results, err := s.ValidateAll(Analyzer)
	if err != nil {
		t.Fatalf("ValidateAll: %v", err)
	}
	if len(results) != 1 || results[0].Scenario != "success" {
		t.Fatalf("unexpected results: %+v", results)
	}
	sr := results[0]
	if len(sr.Variants) != 3 || sr.Passed() != 1 || sr.Failed() != 2 {
		t.Fatalf("expected 3 variants with 2 failures, got %+v", sr.Variants)
	}
	for _, vr := range sr.Variants[1:] {
		if vr.Result.Valid || len(vr.Result.Errors) == 0 {
			t.Fatalf("variant %d should be reported invalid: %+v", vr.Index, vr.Result)
		}
	}
}

func TestMalformedFixture(t *testing.T) {
	s := New(fstest.MapFS{"frankenstein-responses.json": {Data: []byte(`{"scenarios": `)}})
	_, err := s.GetResponse(Frankenstein, scenario.Success)
	if err == nil || !strings.Contains(err.Error(), "frankenstein-responses.json") {
		t.Fatalf("expected parse error naming the file, got %v", err)
	}
}

func TestYAMLFixture(t *testing.T) {
	yamlDoc := `
scenarios:
  success:
    - statusCode: 200
      delay: 15
      data:
        idea_title: YAML Fusion
        idea_description: loaded from yaml
        language: en
        metrics:
          originality_score: 50
          feasibility_score: 50
          impact_score: 50
          scalability_score: 50
          wow_factor: 50
`
	s := New(fstest.MapFS{"frankenstein-responses.yaml": {Data: []byte(yamlDoc)}}, WithStrict(true))
	v, err := s.GetResponse(Frankenstein, scenario.Success)
	if err != nil {
		t.Fatalf("GetResponse: %v", err)
	}
	if v.Data["idea_title"] != "YAML Fusion" || v.Delay == nil || *v.Delay != 15 {
		t.Fatalf("unexpected yaml variant: %+v", v)
	}
	if v.Data["metrics"].(map[string]any)["wow_factor"] != float64(50) {
		t.Fatalf("expected numbers normalised to float64, got %T", v.Data["metrics"].(map[string]any)["wow_factor"])
	}
}

func TestLoadCustomFixtureInvalidatesOnlyItsType(t *testing.T) {
	s := New(nil, WithTTL(0))
	_, _ = s.GetResponse(Analyzer, scenario.Success)
	_, _ = s.GetResponse(Analyzer, scenario.Timeout)
	_, _ = s.GetResponse(Hackathon, scenario.Success)

	path := filepath.Join(t.TempDir(), "My-Analyzer-Fixture.json")
	if err := os.WriteFile(path, []byte(sparseAnalyzer), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	rt, err := s.LoadCustomFixture(path)
	if err != nil {
		t.Fatalf("LoadCustomFixture: %v", err)
	}
	if rt != Analyzer {
		t.Fatalf("expected analyzer type, got %s", rt)
	}
	if stats := s.CacheStats(); stats.Entries != 1 {
		t.Fatalf("expected only the hackathon entry to survive, got %+v", stats)
	}

	v, err := s.GetResponse(Analyzer, scenario.Success)
	if err != nil {
		t.Fatalf("GetResponse: %v", err)
	}
	if v.Data["detailedSummary"] != "This idea works." {
		t.Fatalf("expected custom fixture data, got %+v", v.Data)
	}
}

func TestInferType(t *testing.T) {
	tests := []struct {
		path    string
		want    ResponseType
		wantErr string
	}{
		{path: "/tmp/frankenstein-custom.json", want: Frankenstein},
		{path: "HACKATHON.yaml", want: Hackathon},
		{path: "ideas.json", wantErr: "cannot infer"},
		{path: "analyzer-vs-hackathon.json", wantErr: "ambiguous"},
	}
	for _, tt := range tests {
		got, err := InferType(tt.path)
		if tt.wantErr != "" {
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) || !errors.Is(err, ErrUnknownType) {
				t.Fatalf("InferType(%q) error = %v, want %q", tt.path, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("InferType(%q) = (%s, %v), want %s", tt.path, got, err, tt.want)
		}
	}
}

func TestLoadCustomFixtureMissingFile(t *testing.T) {
	s := New(nil)
	_, err := s.LoadCustomFixture(filepath.Join(t.TempDir(), "analyzer-missing.json"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPeekResponseSkipsCacheAndCounters(t *testing.T) {
	fsys := fstest.MapFS{"analyzer-responses.json": {Data: []byte(sparseAnalyzer)}}
	s := New(fsys)

	v, err := s.PeekResponse(Analyzer, scenario.Timeout)
	if err != nil {
		t.Fatalf("PeekResponse: %v", err)
	}
	if v.StatusCode != 408 || v.Data["message"] != "slow" {
		t.Fatalf("unexpected variant: %+v", v)
	}
	if _, err := s.PeekResponse(Analyzer, scenario.RateLimit); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an empty scenario, got %v", err)
	}
	if stats := s.CacheStats(); stats != (Stats{}) {
		t.Fatalf("PeekResponse should not touch the cache, got %+v", stats)
	}

	v.Data["message"] = "changed"
	again, _ := s.PeekResponse(Analyzer, scenario.Timeout)
	if again.Data["message"] != "slow" {
		t.Fatal("PeekResponse should return a copy")
	}
}

func TestClearCacheResetsEverything(t *testing.T) {
	s := New(nil)
	_, _ = s.GetResponse(Analyzer, scenario.Success)
	_, _ = s.GetResponse(Analyzer, scenario.Success)
	s.ClearCache()
	if stats := s.CacheStats(); stats != (Stats{}) {
		t.Fatalf("expected zero stats after clear, got %+v", stats)
	}
}

func TestFileReturnsDeepCopy(t *testing.T) {
	s := New(nil)
	f, err := s.File(Frankenstein)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	f.Scenarios["success"][0].Data["language"] = "fr"
	again, _ := s.File(Frankenstein)
	if again.Scenarios["success"][0].Data["language"] != "en" {
		t.Fatal("File must return a copy")
	}
}
