// internal/schema/validator.go

// Package schema validates fixture variants against per-response-type JSON
// schemas.
//
// Validation never fails on malformed input: structural mismatches come back
// as "<field path>: <message>" strings in Result.Errors. Only unexpected
// failures inside the validator collapse into a single generic entry.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const (
	maxRecommendedDelayMillis = 30000
	partialContent            = 206
)

type compiled struct {
	success *gojsonschema.Schema
	failure *gojsonschema.Schema
}

var (
	compileOnce sync.Once
	compiledSet map[ResponseType]compiled
	compileErr  error
)

func schemas() (map[ResponseType]compiled, error) {
	compileOnce.Do(func() {
		set := make(map[ResponseType]compiled, len(successSchemas))
		failure, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(variantSchema(errorPayloadSchema)))
		if err != nil {
			compileErr = fmt.Errorf("compile error payload schema: %w", err)
			return
		}
		for t, def := range successSchemas {
			success, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(variantSchema(def)))
			if err != nil {
				compileErr = fmt.Errorf("compile %s schema: %w", t, err)
				return
			}
			set[t] = compiled{success: success, failure: failure}
		}
		compiledSet = set
	})
	return compiledSet, compileErr
}

// Validate checks one variant document ({data, statusCode, delay}) against
// the schema for t. variant may be a map or any JSON-marshalable value.
func Validate(variant any, t ResponseType) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = failed(fmt.Sprintf("validation: unexpected failure: %v", r))
		}
	}()

	set, err := schemas()
	if err != nil {
		return failed("validation: " + err.Error())
	}
	sch, ok := set[t]
	if !ok {
		return failed(fmt.Sprintf("validation: unknown response type %q", t))
	}

	doc, err := asDocument(variant)
	if err != nil {
		return failed("(root): " + err.Error())
	}

	result = Result{Errors: []string{}, Warnings: []string{}}
	data, _ := doc["data"].(map[string]any)
	_, isError := data["error"]

	target := sch.success
	if isError {
		target = sch.failure
		if mixed := successFieldsIn(data, t); len(mixed) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("data: error payload must not carry success fields %v", mixed))
		}
	}

	res, err := target.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return failed("validation: " + err.Error())
	}
	for _, desc := range res.Errors() {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}

	if status, ok := number(doc["statusCode"]); ok {
		switch {
		case isError && status < 400 && status != partialContent:
			result.Warnings = append(result.Warnings, fmt.Sprintf("statusCode: error payload returned with status %d", int(status)))
		case !isError && data != nil && status >= 400:
			result.Warnings = append(result.Warnings, fmt.Sprintf("statusCode: success payload returned with status %d", int(status)))
		}
	}
	if delay, ok := number(doc["delay"]); ok && delay > maxRecommendedDelayMillis {
		result.Warnings = append(result.Warnings, fmt.Sprintf("delay: %dms exceeds the recommended %dms", int(delay), maxRecommendedDelayMillis))
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateScenarios runs Validate over every variant of every scenario and
// returns the results sorted by scenario name.
func ValidateScenarios(scenarios map[string][]any, t ResponseType) []ScenarioResult {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]ScenarioResult, 0, len(names))
	for _, name := range names {
		variants := scenarios[name]
		sr := ScenarioResult{Scenario: name, Variants: make([]VariantResult, 0, len(variants))}
		if len(variants) == 0 {
			sr.Variants = append(sr.Variants, VariantResult{
				Index:  -1,
				Result: failed(fmt.Sprintf("scenarios.%s: must contain at least one variant", name)),
			})
		}
		for i, v := range variants {
			sr.Variants = append(sr.Variants, VariantResult{Index: i, Result: Validate(v, t)})
		}
		results = append(results, sr)
	}
	return results
}

func failed(msg string) Result {
	return Result{Valid: false, Errors: []string{msg}, Warnings: []string{}}
}

func asDocument(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("variant is not JSON-encodable: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("variant must be an object: %w", err)
	}
	return m, nil
}

func successFieldsIn(data map[string]any, t ResponseType) []string {
	required, _ := successSchemas[t]["required"].([]string)
	var present []string
	for _, field := range required {
		if _, ok := data[field]; ok {
			present = append(present, field)
		}
	}
	return present
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
