// internal/schema/types.go
package schema

import (
	"fmt"
	"sort"
	"strings"
)

// ResponseType identifies which AI operation a fixture stands in for.
type ResponseType string

const (
	Analyzer     ResponseType = "analyzer"
	Hackathon    ResponseType = "hackathon"
	Frankenstein ResponseType = "frankenstein"
)

// ResponseTypes returns every response type in a stable order.
func ResponseTypes() []ResponseType {
	return []ResponseType{Analyzer, Hackathon, Frankenstein}
}

// ParseResponseType validates name against the closed set of response types.
func ParseResponseType(name string) (ResponseType, error) {
	t := ResponseType(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := successSchemas[t]; ok {
		return t, nil
	}
	names := make([]string, 0, len(successSchemas))
	for k := range successSchemas {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return "", fmt.Errorf("unknown response type %q (valid: %s)", name, strings.Join(names, ", "))
}

func (t ResponseType) String() string { return string(t) }

// Result is the outcome of validating one fixture variant.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// VariantResult ties a Result to the variant's position in its scenario.
type VariantResult struct {
	Index  int    `json:"index"`
	Result Result `json:"result"`
}

// ScenarioResult holds the results for every variant of one scenario.
type ScenarioResult struct {
	Scenario string          `json:"scenario"`
	Variants []VariantResult `json:"variants"`
}

// Passed counts valid variants.
func (r ScenarioResult) Passed() int {
	n := 0
	for _, v := range r.Variants {
		if v.Result.Valid {
			n++
		}
	}
	return n
}

// Failed counts invalid variants.
func (r ScenarioResult) Failed() int {
	return len(r.Variants) - r.Passed()
}

// Summary aggregates a full file validation.
type Summary struct {
	Scenarios int
	Variants  int
	Passed    int
	Failed    int
	Warnings  int
}

// PassRate is the share of valid variants in percent.
func (s Summary) PassRate() float64 {
	if s.Variants == 0 {
		return 100
	}
	return float64(s.Passed) / float64(s.Variants) * 100
}

// Summarize totals a set of scenario results.
func Summarize(results []ScenarioResult) Summary {
	var s Summary
	s.Scenarios = len(results)
	for _, r := range results {
		s.Variants += len(r.Variants)
		s.Passed += r.Passed()
		for _, v := range r.Variants {
			s.Warnings += len(v.Result.Warnings)
		}
	}
	s.Failed = s.Variants - s.Passed
	return s
}
