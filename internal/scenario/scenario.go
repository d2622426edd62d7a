// internal/scenario/scenario.go

// Package scenario defines the simulated outcome classes a mock call can take.
package scenario

import (
	"sort"
	"strings"

	"github.com/mwiater/ideamock/internal/logging"
)

// TestScenario names a simulated outcome: success or a specific failure mode.
type TestScenario string

const (
	Success         TestScenario = "success"
	APIError        TestScenario = "api_error"
	Timeout         TestScenario = "timeout"
	RateLimit       TestScenario = "rate_limit"
	InvalidInput    TestScenario = "invalid_input"
	PartialResponse TestScenario = "partial_response"
)

// Health is the coarse status a scenario maps to in a health check.
type Health string

const (
	Healthy   Health = "healthy"
	Degraded  Health = "degraded"
	Unhealthy Health = "unhealthy"
)

// Outcome describes the error shape synthesized for a failure scenario.
type Outcome struct {
	Code       string
	StatusCode int
	Message    string
	Health     Health
}

var outcomes = map[TestScenario]Outcome{
	Success:         {Code: "", StatusCode: 200, Health: Healthy},
	APIError:        {Code: "API_ERROR", StatusCode: 500, Message: "The AI service encountered an internal error", Health: Unhealthy},
	Timeout:         {Code: "TIMEOUT", StatusCode: 408, Message: "The AI service did not respond in time", Health: Degraded},
	RateLimit:       {Code: "RATE_LIMIT", StatusCode: 429, Message: "Too many requests, please retry later", Health: Degraded},
	InvalidInput:    {Code: "INVALID_INPUT", StatusCode: 400, Message: "The request could not be processed", Health: Unhealthy},
	PartialResponse: {Code: "PARTIAL_RESPONSE", StatusCode: 206, Message: "The AI service returned an incomplete response", Health: Unhealthy},
}

// All returns the known scenarios in a stable order.
func All() []TestScenario {
	return []TestScenario{Success, APIError, Timeout, RateLimit, InvalidInput, PartialResponse}
}

// Names returns the known scenario names sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(outcomes))
	for s := range outcomes {
		names = append(names, string(s))
	}
	sort.Strings(names)
	return names
}

// Parse returns the scenario for name if it is one of the known set.
func Parse(name string) (TestScenario, bool) {
	s := TestScenario(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := outcomes[s]; !ok {
		return "", false
	}
	return s, true
}

// IsValid reports whether name is a known scenario.
func IsValid(name string) bool {
	_, ok := Parse(name)
	return ok
}

// Normalize parses name and falls back to Success when it is unknown.
// Empty input falls back silently; anything else logs a warning.
func Normalize(name string) TestScenario {
	if s, ok := Parse(name); ok {
		return s
	}
	if strings.TrimSpace(name) != "" {
		logging.LogWarn("unknown mock scenario %q, falling back to %q (valid: %s)", name, Success, strings.Join(Names(), ", "))
	}
	return Success
}

// Outcome returns the error shape for s. Unknown scenarios report success.
func (s TestScenario) Outcome() Outcome {
	if o, ok := outcomes[s]; ok {
		return o
	}
	return outcomes[Success]
}

// Health maps s to a coarse service status.
func (s TestScenario) Health() Health {
	return s.Outcome().Health
}

// IsFailure reports whether s synthesizes an error instead of a fixture.
func (s TestScenario) IsFailure() bool {
	return s != Success
}

func (s TestScenario) String() string { return string(s) }
