package customize

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mwiater/ideamock/internal/fixtures"
)

func frankensteinBase() fixtures.Variant {
	return fixtures.Variant{
		StatusCode: 200,
		Data: map[string]any{
			"idea_title":       "Stitched Together Platform",
			"idea_description": "a product that fuses the strongest traits of each source concept.",
			"tech_stack":       "Cloud hosting with a managed database, object storage for assets and a message queue for jobs.",
			"language":         "en",
			"metrics": map[string]any{
				"originality_score": 72.0,
				"feasibility_score": 68.0,
				"impact_score":      70.0,
				"scalability_score": 60.0,
				"wow_factor":        75.0,
			},
		},
	}
}

func metric(t *testing.T, v fixtures.Variant, name string) float64 {
	t.Helper()
	m, ok := v.Data["metrics"].(map[string]any)
	if !ok {
		t.Fatalf("metrics missing: %+v", v.Data)
	}
	f, ok := m[name].(float64)
	if !ok {
		t.Fatalf("metric %s not a float64: %#v", name, m[name])
	}
	return f
}

func elementsInput(mode string, names ...string) map[string]any {
	return map[string]any{"elements": names, "mode": mode}
}

func TestCustomizeDoesNotMutateBase(t *testing.T) {
	base := frankensteinBase()
	before := base.Clone()

	_ = Customize(base, fixtures.Frankenstein, Context{
		Locale:      "es",
		Input:       elementsInput(ModeAWS, "Slack", "Trello", "Zoom"),
		VariantData: map[string]any{"summary": "override"},
	})

	if diff := cmp.Diff(before, base); diff != "" {
		t.Fatalf("base mutated (-before +after):\n%s", diff)
	}
}

func TestCustomizeErrorPassthrough(t *testing.T) {
	base := fixtures.Variant{StatusCode: 429, Data: map[string]any{"error": "rate_limit", "message": "slow down"}}
	got := Customize(base, fixtures.Analyzer, Context{
		Locale:      "es",
		Input:       map[string]any{"idea": "anything"},
		VariantData: map[string]any{"message": "changed"},
	})
	if diff := cmp.Diff(base, got); diff != "" {
		t.Fatalf("error payload changed (-want +got):\n%s", diff)
	}
}

func TestAnalyzerPlaceholder(t *testing.T) {
	base := fixtures.Variant{StatusCode: 200, Data: map[string]any{
		"detailedSummary": "We looked at {{idea}} closely. {{idea}} again.",
	}}
	got := Customize(base, fixtures.Analyzer, Context{Input: map[string]any{"idea": "  ghost   kitchen marketplace "}})
	want := "We looked at ghost kitchen marketplace closely. {{idea}} again."
	if got.Data["detailedSummary"] != want {
		t.Fatalf("detailedSummary=%q want %q", got.Data["detailedSummary"], want)
	}
}

func TestAnalyzerGenericPhrase(t *testing.T) {
	base := fixtures.Variant{StatusCode: 200, Data: map[string]any{
		"detailedSummary": "This idea targets a real need. This idea is risky.",
	}}
	long := strings.Repeat("x", 100)
	got := Customize(base, fixtures.Analyzer, Context{Input: map[string]any{"idea": long}})
	summary := got.Data["detailedSummary"].(string)
	if !strings.HasPrefix(summary, `This idea ("`+strings.Repeat("x", SnippetRunes)+`…")`) {
		t.Fatalf("unexpected summary: %q", summary)
	}
	if strings.Count(summary, "xxxx") == 0 || !strings.HasSuffix(summary, "This idea is risky.") {
		t.Fatalf("only the first phrase should be replaced: %q", summary)
	}
}

func TestHackathonPrefix(t *testing.T) {
	base := fixtures.Variant{StatusCode: 200, Data: map[string]any{"detailedSummary": "Strong demo."}}
	got := Customize(base, fixtures.Hackathon, Context{Input: map[string]any{"projectDescription": "Haunted code reviewer"}})
	if got.Data["detailedSummary"] != `Project "Haunted code reviewer": Strong demo.` {
		t.Fatalf("detailedSummary=%q", got.Data["detailedSummary"])
	}

	withCategory := fixtures.Variant{StatusCode: 200, Data: map[string]any{
		"detailedSummary":  "Strong demo.",
		"categoryAnalysis": map[string]any{"bestMatch": "frankenstein", "fitScore": 7.0},
	}}
	got = Customize(withCategory, fixtures.Hackathon, Context{Input: map[string]any{"category": "resurrection"}})
	if got.Data["categoryAnalysis"].(map[string]any)["bestMatch"] != "resurrection" {
		t.Fatalf("category not applied: %+v", got.Data["categoryAnalysis"])
	}
	if got.Data["detailedSummary"] != "Strong demo." {
		t.Fatalf("summary changed without a description: %q", got.Data["detailedSummary"])
	}
}

func TestSpanishLocale(t *testing.T) {
	base := fixtures.Variant{StatusCode: 200, Data: map[string]any{
		"detailedSummary":       "English summary",
		"finalScoreExplanation": "English explanation",
		"finalScore":            4.0,
	}}
	got := Customize(base, fixtures.Analyzer, Context{Locale: "ES"})
	if got.Data["detailedSummary"] != spanishText["detailedSummary"] {
		t.Fatalf("detailedSummary not translated: %q", got.Data["detailedSummary"])
	}
	if got.Data["finalScoreExplanation"] != spanishText["finalScoreExplanation"] {
		t.Fatalf("finalScoreExplanation not translated: %q", got.Data["finalScoreExplanation"])
	}
	if _, ok := got.Data["viabilitySummary"]; ok {
		t.Fatal("absent fields must not be added")
	}

	fr := Customize(frankensteinBase(), fixtures.Frankenstein, Context{Locale: "es"})
	if fr.Data["language"] != "es" {
		t.Fatalf("language=%v want es", fr.Data["language"])
	}

	en := Customize(base, fixtures.Analyzer, Context{Locale: "fr"})
	if en.Data["detailedSummary"] != "English summary" {
		t.Fatal("unsupported locales must leave text alone")
	}
}

func TestFrankensteinTitleAndDescription(t *testing.T) {
	tests := []struct {
		names []string
		title string
	}{
		{[]string{"Slack", "Trello"}, "Slack + Trello Fusion Platform"},
		{[]string{"Slack", "Trello", "Zoom"}, "Slack + Trello + Zoom Integration Hub"},
		{[]string{"Slack", "Trello", "Zoom", "Figma"}, "Slack + Trello + Zoom + Figma Ecosystem"},
	}
	for _, tt := range tests {
		got := Customize(frankensteinBase(), fixtures.Frankenstein, Context{Input: elementsInput("", tt.names...)})
		if got.Data["idea_title"] != tt.title {
			t.Fatalf("title=%q want %q", got.Data["idea_title"], tt.title)
		}
	}

	got := Customize(frankensteinBase(), fixtures.Frankenstein, Context{Input: elementsInput("", "Slack", "Trello", "Zoom")})
	desc := got.Data["idea_description"].(string)
	if !strings.HasPrefix(desc, "By combining Slack, Trello and Zoom, a product") {
		t.Fatalf("description=%q", desc)
	}
}

func TestFrankensteinMetricsMonotonic(t *testing.T) {
	for _, mode := range []string{ModeCompanies, ModeAWS} {
		two := Customize(frankensteinBase(), fixtures.Frankenstein, Context{Input: elementsInput(mode, "A", "B")})
		four := Customize(frankensteinBase(), fixtures.Frankenstein, Context{Input: elementsInput(mode, "A", "B", "C", "D")})

		if metric(t, four, metricOriginality) < metric(t, two, metricOriginality) {
			t.Fatalf("%s: originality should not drop with more elements", mode)
		}
		if metric(t, four, metricWow) < metric(t, two, metricWow) {
			t.Fatalf("%s: wow should not drop with more elements", mode)
		}
		if metric(t, four, metricFeasibility) > metric(t, two, metricFeasibility) {
			t.Fatalf("%s: feasibility should not rise with more elements", mode)
		}
	}
}

func TestFrankensteinAWSMode(t *testing.T) {
	got := Customize(frankensteinBase(), fixtures.Frankenstein, Context{Input: elementsInput(ModeAWS, "A", "B", "C", "D", "E", "F", "G", "H", "I", "J")})

	stack := got.Data["tech_stack"].(string)
	for _, want := range []string{"AWS Lambda", "Amazon DynamoDB", "Amazon S3", "Amazon SQS"} {
		if !strings.Contains(stack, want) {
			t.Fatalf("tech_stack %q missing %q", stack, want)
		}
	}
	if f := metric(t, got, metricFeasibility); f != awsFeasibilityFloor {
		t.Fatalf("feasibility=%v want floor %v", f, awsFeasibilityFloor)
	}
	if s := metric(t, got, metricScalability); s != 72 {
		t.Fatalf("scalability=%v want 72", s)
	}
	if o := metric(t, got, metricOriginality); o != 92 {
		t.Fatalf("originality=%v want capped bonus 92", o)
	}
	if w := metric(t, got, metricWow); w != 100 {
		t.Fatalf("wow=%v want clamp 100", w)
	}
}

func TestFrankensteinCompaniesMode(t *testing.T) {
	got := Customize(frankensteinBase(), fixtures.Frankenstein, Context{Input: elementsInput(ModeCompanies, "Slack", "Trello")})
	desc := got.Data["idea_description"].(string)
	if !strings.Contains(desc, "synergy between Slack and Trello") {
		t.Fatalf("description missing synergy sentence: %q", desc)
	}
	if i := metric(t, got, metricImpact); i != 78 {
		t.Fatalf("impact=%v want 78", i)
	}
	if o := metric(t, got, metricOriginality); o != 72 {
		t.Fatalf("originality=%v want unchanged 72", o)
	}

	many := Customize(frankensteinBase(), fixtures.Frankenstein, Context{Input: elementsInput(ModeCompanies, "A", "B", "C", "D", "E", "F", "G")})
	if f := metric(t, many, metricFeasibility); f != synergyFeasibilityMin {
		t.Fatalf("feasibility=%v want floor %v", f, synergyFeasibilityMin)
	}
}

func TestFrankensteinIgnoresTooFewElements(t *testing.T) {
	base := frankensteinBase()
	got := Customize(base, fixtures.Frankenstein, Context{Input: elementsInput(ModeAWS, "Solo", " ")})
	if diff := cmp.Diff(base, got); diff != "" {
		t.Fatalf("single element should leave data alone (-want +got):\n%s", diff)
	}
}

func TestVariantDataMergedLast(t *testing.T) {
	got := Customize(frankensteinBase(), fixtures.Frankenstein, Context{
		Locale: "es",
		Input:  elementsInput(ModeCompanies, "Slack", "Trello"),
		VariantData: map[string]any{
			"language": "en",
			"metrics":  map[string]any{"wow_factor": 12.0, "impact_score": nil},
		},
	})
	if got.Data["language"] != "en" {
		t.Fatalf("override should win over locale: %v", got.Data["language"])
	}
	if w := metric(t, got, metricWow); w != 12 {
		t.Fatalf("wow=%v want 12", w)
	}
	if i := metric(t, got, metricImpact); i != 78 {
		t.Fatalf("nil override must not clear impact, got %v", i)
	}
}

func TestMerge(t *testing.T) {
	dst := map[string]any{
		"a":    1.0,
		"list": []any{1.0, 2.0, 3.0},
		"nested": map[string]any{
			"keep":    "yes",
			"replace": "old",
		},
		"scalarToObject": "x",
	}
	src := map[string]any{
		"list":           []any{9.0},
		"nested":         map[string]any{"replace": "new", "added": true, "skip": nil},
		"scalarToObject": map[string]any{"k": "v"},
		"missing":        nil,
	}

	got := Merge(dst, src)
	want := map[string]any{
		"a":              1.0,
		"list":           []any{9.0},
		"nested":         map[string]any{"keep": "yes", "replace": "new", "added": true},
		"scalarToObject": map[string]any{"k": "v"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Merge mismatch (-want +got):\n%s", diff)
	}

	got["nested"].(map[string]any)["keep"] = "changed"
	src["list"].([]any)[0] = 0.0
	if dst["nested"].(map[string]any)["keep"] != "yes" {
		t.Fatal("Merge result aliases dst")
	}
	if got["list"].([]any)[0] != 9.0 {
		t.Fatal("Merge result aliases src")
	}
}
