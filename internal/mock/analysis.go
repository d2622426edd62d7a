// internal/mock/analysis.go
package mock

import (
	"context"
	"strings"

	"github.com/mwiater/ideamock/internal/ai"
	"github.com/mwiater/ideamock/internal/customize"
	"github.com/mwiater/ideamock/internal/fixtures"
)

// AnalysisService is the mock ai.AnalysisService.
type AnalysisService struct {
	*core
}

var _ ai.AnalysisService = (*AnalysisService)(nil)

// NewAnalysisService creates a mock analysis service over store. A nil store
// serves the embedded fixtures.
func NewAnalysisService(store *fixtures.Store, cfg Config, opts ...Option) *AnalysisService {
	return &AnalysisService{core: newCore(store, cfg, opts)}
}

// AnalyzeIdea returns a fixture-backed analysis of idea.
func (s *AnalysisService) AnalyzeIdea(ctx context.Context, idea, locale string) (*ai.Analysis, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, invalidRequest("idea must not be empty")
	}

	params := map[string]any{"idea": idea, "locale": locale}
	data, err := s.call(ctx, "AnalyzeIdea", fixtures.Analyzer, params, customize.Context{
		Locale: locale,
		Input:  map[string]any{"idea": idea},
	})
	if err != nil {
		return nil, err
	}

	var out ai.Analysis
	if err := ai.Decode(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeHackathonProject returns a fixture-backed judgement of sub.
func (s *AnalysisService) AnalyzeHackathonProject(ctx context.Context, sub ai.HackathonSubmission, locale string) (*ai.HackathonAnalysis, error) {
	desc := strings.TrimSpace(sub.Description)
	if desc == "" {
		return nil, invalidRequest("project description must not be empty")
	}
	category := strings.TrimSpace(sub.Category)

	params := map[string]any{"projectDescription": desc, "category": category, "locale": locale}
	data, err := s.call(ctx, "AnalyzeHackathonProject", fixtures.Hackathon, params, customize.Context{
		Locale: locale,
		Input:  map[string]any{"projectDescription": desc, "category": category},
	})
	if err != nil {
		return nil, err
	}

	var out ai.HackathonAnalysis
	if err := ai.Decode(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HealthCheck maps the configured scenario to a health status.
func (s *AnalysisService) HealthCheck(ctx context.Context) ai.HealthStatus {
	return s.health()
}
