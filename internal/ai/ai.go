// internal/ai/ai.go

// Package ai defines the contracts for the idea-analysis AI services and the
// typed payloads they return. The mock package implements these contracts with
// fixture-backed responses; a real provider would implement the same ones.
package ai

import (
	"context"
	"strings"
	"time"
)

// AnalysisService scores startup ideas and hackathon projects.
type AnalysisService interface {
	AnalyzeIdea(ctx context.Context, idea, locale string) (*Analysis, error)
	AnalyzeHackathonProject(ctx context.Context, sub HackathonSubmission, locale string) (*HackathonAnalysis, error)
	HealthCheck(ctx context.Context) HealthStatus
}

// FrankensteinService stitches several elements into one new idea.
type FrankensteinService interface {
	GenerateFrankensteinIdea(ctx context.Context, elements []Element, mode, language string) (*FrankensteinIdea, error)
	HealthCheck(ctx context.Context) HealthStatus
}

// HealthStatus is the result of a health check.
type HealthStatus struct {
	Status    string    `json:"status"`
	Scenario  string    `json:"scenario"`
	Mock      bool      `json:"mock"`
	CheckedAt time.Time `json:"checkedAt"`
}

// HackathonSubmission is the project being judged.
type HackathonSubmission struct {
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// Element is one ingredient of a Frankenstein idea: a company, product or
// service name.
type Element struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RubricItem is one scored criterion of an analysis.
type RubricItem struct {
	Name          string  `json:"name"`
	Score         float64 `json:"score"`
	Justification string  `json:"justification"`
}

// Competitor is an existing product the idea would compete with.
type Competitor struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Suggestion is a titled piece of advice: an improvement, a next step or a
// hackathon tip.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Analysis is the analyzer result for a single idea.
type Analysis struct {
	FinalScore             float64      `json:"finalScore"`
	FinalScoreExplanation  string       `json:"finalScoreExplanation"`
	DetailedSummary        string       `json:"detailedSummary"`
	ViabilitySummary       string       `json:"viabilitySummary,omitempty"`
	ScoringRubric          []RubricItem `json:"scoringRubric"`
	Competitors            []Competitor `json:"competitors,omitempty"`
	ImprovementSuggestions []Suggestion `json:"improvementSuggestions,omitempty"`
	NextSteps              []Suggestion `json:"nextSteps,omitempty"`
	Locale                 string       `json:"locale,omitempty"`
}

// CategoryAnalysis rates how well a project fits its hackathon category.
type CategoryAnalysis struct {
	BestMatch   string  `json:"bestMatch"`
	FitScore    float64 `json:"fitScore"`
	Explanation string  `json:"explanation"`
}

// HackathonAnalysis is the judge's result for a hackathon project.
type HackathonAnalysis struct {
	FinalScore              float64           `json:"finalScore"`
	FinalScoreExplanation   string            `json:"finalScoreExplanation"`
	DetailedSummary         string            `json:"detailedSummary"`
	ViabilitySummary        string            `json:"viabilitySummary,omitempty"`
	CriteriaAnalysis        []RubricItem      `json:"criteriaAnalysis"`
	CategoryAnalysis        *CategoryAnalysis `json:"categoryAnalysis,omitempty"`
	HackathonSpecificAdvice []Suggestion      `json:"hackathonSpecificAdvice,omitempty"`
}

// Metrics are the 0..100 scores attached to a Frankenstein idea.
type Metrics struct {
	Originality float64 `json:"originality_score"`
	Feasibility float64 `json:"feasibility_score"`
	Impact      float64 `json:"impact_score"`
	Scalability float64 `json:"scalability_score"`
	WowFactor   float64 `json:"wow_factor"`
}

// FrankensteinIdea is a generated idea combining several elements.
type FrankensteinIdea struct {
	Title                  string  `json:"idea_title"`
	Description            string  `json:"idea_description"`
	CoreConcept            string  `json:"core_concept,omitempty"`
	ProblemStatement       string  `json:"problem_statement,omitempty"`
	ProposedSolution       string  `json:"proposed_solution,omitempty"`
	UniqueValueProposition string  `json:"unique_value_proposition,omitempty"`
	TargetAudience         string  `json:"target_audience,omitempty"`
	BusinessModel          string  `json:"business_model,omitempty"`
	GrowthStrategy         string  `json:"growth_strategy,omitempty"`
	TechStack              string  `json:"tech_stack,omitempty"`
	RisksAndChallenges     string  `json:"risks_and_challenges,omitempty"`
	Summary                string  `json:"summary,omitempty"`
	Language               string  `json:"language"`
	Metrics                Metrics `json:"metrics"`
}

// ElementNames returns the trimmed, non-empty names of elements.
func ElementNames(elements []Element) []string {
	names := make([]string, 0, len(elements))
	for _, e := range elements {
		if n := strings.TrimSpace(e.Name); n != "" {
			names = append(names, n)
		}
	}
	return names
}
