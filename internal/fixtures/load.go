// internal/fixtures/load.go
package fixtures

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mwiater/ideamock/internal/logging"
	"gopkg.in/yaml.v3"
)

// fileBases is the typed lookup table from response type to fixture file
// base name. Loaders try each extension in fixtureExtensions.
var fileBases = map[ResponseType]string{
	Analyzer:     "analyzer-responses",
	Hackathon:    "hackathon-responses",
	Frankenstein: "frankenstein-responses",
}

var fixtureExtensions = []string{".json", ".yaml", ".yml"}

// IsFixtureFile reports whether path has a fixture extension.
func IsFixtureFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range fixtureExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// InferType picks the response type whose name appears in the file name.
// Zero or several matches are errors.
func InferType(path string) (ResponseType, error) {
	base := strings.ToLower(filepath.Base(path))
	var matches []ResponseType
	for t := range fileBases {
		if strings.Contains(base, string(t)) {
			matches = append(matches, t)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i] < matches[j] })
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("%w: cannot infer response type from %q; the file name must contain one of analyzer, frankenstein, hackathon", ErrUnknownType, filepath.Base(path))
	default:
		return "", fmt.Errorf("%w: file name %q is ambiguous, it matches %v", ErrUnknownType, filepath.Base(path), matches)
	}
}

// decodeDocument parses JSON or YAML (chosen by extension) into generic
// JSON-shaped values with float64 numbers.
func decodeDocument(data []byte, ext string) (map[string]any, error) {
	var doc any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}
	m, ok := normalize(doc).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("fixture document must be an object with a top-level \"scenarios\" key")
	}
	return m, nil
}

// rawScenarios extracts the scenario → []variant map without interpreting variants.
func rawScenarios(doc map[string]any) (map[string][]any, error) {
	scenarios, ok := doc["scenarios"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("fixture document is missing a \"scenarios\" object")
	}
	out := make(map[string][]any, len(scenarios))
	for name, v := range scenarios {
		variants, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("scenarios.%s must be an array of variants", name)
		}
		out[name] = variants
	}
	return out, nil
}

// toFile converts raw variants into typed ones. With skipInvalid a variant
// that does not decode is logged and left out instead of failing the file.
func toFile(t ResponseType, name string, raw map[string][]any, skipInvalid bool) (*File, error) {
	file := &File{Type: t, Scenarios: make(map[string][]Variant, len(raw)), raw: raw}
	for sc, variants := range raw {
		typed := make([]Variant, 0, len(variants))
		for i, rv := range variants {
			var v Variant
			if err := mapstructure.Decode(rv, &v); err != nil {
				if !skipInvalid {
					return nil, fmt.Errorf("scenarios.%s[%d]: %w", sc, i, err)
				}
				logging.LogWarn("fixture %s: skipping scenarios.%s[%d]: %v", name, sc, i, err)
				continue
			}
			typed = append(typed, v)
		}
		file.Scenarios[sc] = typed
	}
	return file, nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	default:
		return v
	}
}
