// internal/customize/customize.go

// Package customize tailors a stored fixture variant to the caller's request:
// locale strings, the caller's own input text and any explicit overrides.
//
// The numeric adjustments applied to frankenstein metrics are illustrative
// heuristics. They keep the mock plausible (more ingredients read as more
// original but harder to build) and are not meant to model real scoring.
package customize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mwiater/ideamock/internal/fixtures"
	"github.com/mwiater/ideamock/internal/util"
)

// SnippetRunes caps how much of the caller's text is echoed back.
const SnippetRunes = 60

// Context carries everything the customizer may use from the request.
type Context struct {
	Locale      string
	Input       map[string]any
	VariantData map[string]any
}

type inputFunc func(data map[string]any, input map[string]any)

var inputCustomizers = map[fixtures.ResponseType]inputFunc{
	fixtures.Analyzer:     customizeAnalyzer,
	fixtures.Hackathon:    customizeHackathon,
	fixtures.Frankenstein: customizeFrankenstein,
}

// Customize returns a tailored deep copy of base. base is never modified.
// Error payloads come back as an unchanged copy.
func Customize(base fixtures.Variant, t fixtures.ResponseType, ctx Context) fixtures.Variant {
	out := base.Clone()
	if out.IsError() {
		return out
	}
	if out.Data == nil {
		out.Data = map[string]any{}
	}

	applyLocale(out.Data, t, ctx.Locale)
	if len(ctx.Input) > 0 {
		if fn, ok := inputCustomizers[t]; ok {
			fn(out.Data, ctx.Input)
		}
	}
	if len(ctx.VariantData) > 0 {
		out.Data = Merge(out.Data, ctx.VariantData)
	}
	return out
}

var genericIdeaPhrase = regexp.MustCompile(`(?i)\b(this|the|esta|la) (idea|concept|concepto)\b`)

func customizeAnalyzer(data, input map[string]any) {
	idea := util.Snippet(stringValue(input["idea"]), SnippetRunes)
	summary, ok := data["detailedSummary"].(string)
	if idea == "" || !ok {
		return
	}
	if strings.Contains(summary, "{{idea}}") {
		data["detailedSummary"] = strings.Replace(summary, "{{idea}}", idea, 1)
		return
	}
	loc := genericIdeaPhrase.FindStringIndex(summary)
	if loc == nil {
		return
	}
	phrase := summary[loc[0]:loc[1]]
	data["detailedSummary"] = summary[:loc[0]] + fmt.Sprintf("%s (%q)", phrase, idea) + summary[loc[1]:]
}

func customizeHackathon(data, input map[string]any) {
	if category := stringValue(input["category"]); category != "" {
		if ca, ok := data["categoryAnalysis"].(map[string]any); ok {
			ca["bestMatch"] = category
		}
	}
	desc := util.Snippet(stringValue(input["projectDescription"]), SnippetRunes)
	if desc == "" {
		return
	}
	summary, _ := data["detailedSummary"].(string)
	data["detailedSummary"] = fmt.Sprintf("Project %q: %s", desc, summary)
}

func stringValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// stringSlice accepts []string or the []any produced by JSON decoding.
func stringSlice(v any) []string {
	var raw []string
	switch t := v.(type) {
	case []string:
		raw = t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
