// internal/mock/frankenstein.go
package mock

import (
	"context"
	"strings"

	"github.com/mwiater/ideamock/internal/ai"
	"github.com/mwiater/ideamock/internal/customize"
	"github.com/mwiater/ideamock/internal/fixtures"
)

// FrankensteinService is the mock ai.FrankensteinService.
type FrankensteinService struct {
	*core
}

var _ ai.FrankensteinService = (*FrankensteinService)(nil)

// NewFrankensteinService creates a mock idea generator over store. A nil
// store serves the embedded fixtures.
func NewFrankensteinService(store *fixtures.Store, cfg Config, opts ...Option) *FrankensteinService {
	return &FrankensteinService{core: newCore(store, cfg, opts)}
}

// Modes lists the accepted combination modes.
func Modes() []string {
	return []string{customize.ModeAWS, customize.ModeCompanies}
}

func normalizeMode(mode string) (string, bool) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	switch mode {
	case "":
		return customize.ModeCompanies, true
	case customize.ModeCompanies, customize.ModeAWS:
		return mode, true
	default:
		return mode, false
	}
}

// GenerateFrankensteinIdea stitches elements into one idea. At least two
// named elements are required.
func (s *FrankensteinService) GenerateFrankensteinIdea(ctx context.Context, elements []ai.Element, mode, language string) (*ai.FrankensteinIdea, error) {
	names := ai.ElementNames(elements)
	if len(names) < 2 {
		return nil, invalidRequest("at least two elements are required, got %d", len(names))
	}
	mode, ok := normalizeMode(mode)
	if !ok {
		return nil, invalidRequest("unknown mode %q (expected one of %s)", mode, strings.Join(Modes(), ", "))
	}
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		language = "en"
	}

	params := map[string]any{"elements": names, "mode": mode, "language": language}
	data, err := s.call(ctx, "GenerateFrankensteinIdea", fixtures.Frankenstein, params, customize.Context{
		Locale: language,
		Input:  map[string]any{"elements": names, "mode": mode},
	})
	if err != nil {
		return nil, err
	}

	var out ai.FrankensteinIdea
	if err := ai.Decode(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HealthCheck maps the configured scenario to a health status.
func (s *FrankensteinService) HealthCheck(ctx context.Context) ai.HealthStatus {
	return s.health()
}
