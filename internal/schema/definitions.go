// internal/schema/definitions.go
package schema

// Schemas are plain JSON-schema documents expressed as Go maps, loaded with
// gojsonschema.NewGoLoader.

func scoreItem(maxScore int) map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"name", "score", "justification"},
		"properties": map[string]any{
			"name":          map[string]any{"type": "string", "minLength": 1},
			"score":         map[string]any{"type": "number", "minimum": 0, "maximum": maxScore},
			"justification": map[string]any{"type": "string"},
		},
	}
}

var titledItem = map[string]any{
	"type":     "object",
	"required": []string{"title"},
	"properties": map[string]any{
		"title":       map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string"},
	},
}

var metricScore = map[string]any{"type": "number", "minimum": 0, "maximum": 100}

var successSchemas = map[ResponseType]map[string]any{
	Analyzer: {
		"type":     "object",
		"required": []string{"finalScore", "finalScoreExplanation", "detailedSummary", "scoringRubric"},
		"properties": map[string]any{
			"finalScore":             map[string]any{"type": "number", "minimum": 0, "maximum": 5},
			"finalScoreExplanation":  map[string]any{"type": "string", "minLength": 1},
			"detailedSummary":        map[string]any{"type": "string", "minLength": 1},
			"viabilitySummary":       map[string]any{"type": "string"},
			"scoringRubric":          map[string]any{"type": "array", "minItems": 1, "items": scoreItem(5)},
			"competitors":            map[string]any{"type": "array", "items": map[string]any{"type": "object", "required": []string{"name"}}},
			"improvementSuggestions": map[string]any{"type": "array", "items": titledItem},
			"nextSteps":              map[string]any{"type": "array", "items": titledItem},
			"locale":                 map[string]any{"type": "string"},
		},
	},
	Hackathon: {
		"type":     "object",
		"required": []string{"finalScore", "finalScoreExplanation", "detailedSummary", "criteriaAnalysis"},
		"properties": map[string]any{
			"finalScore":            map[string]any{"type": "number", "minimum": 0, "maximum": 5},
			"finalScoreExplanation": map[string]any{"type": "string", "minLength": 1},
			"detailedSummary":       map[string]any{"type": "string", "minLength": 1},
			"viabilitySummary":      map[string]any{"type": "string"},
			"criteriaAnalysis":      map[string]any{"type": "array", "minItems": 1, "items": scoreItem(5)},
			"categoryAnalysis": map[string]any{
				"type":     "object",
				"required": []string{"bestMatch"},
				"properties": map[string]any{
					"bestMatch":   map[string]any{"type": "string"},
					"fitScore":    map[string]any{"type": "number", "minimum": 0, "maximum": 10},
					"explanation": map[string]any{"type": "string"},
				},
			},
			"hackathonSpecificAdvice": map[string]any{"type": "array", "items": titledItem},
		},
	},
	Frankenstein: {
		"type":     "object",
		"required": []string{"idea_title", "idea_description", "language", "metrics"},
		"properties": map[string]any{
			"idea_title":       map[string]any{"type": "string", "minLength": 1},
			"idea_description": map[string]any{"type": "string", "minLength": 1},
			"language":         map[string]any{"type": "string", "enum": []string{"en", "es"}},
			"tech_stack":       map[string]any{"type": "string"},
			"summary":          map[string]any{"type": "string"},
			"metrics": map[string]any{
				"type":     "object",
				"required": []string{"originality_score", "feasibility_score", "impact_score", "scalability_score", "wow_factor"},
				"properties": map[string]any{
					"originality_score": metricScore,
					"feasibility_score": metricScore,
					"impact_score":      metricScore,
					"scalability_score": metricScore,
					"wow_factor":        metricScore,
				},
			},
		},
	},
}

var errorPayloadSchema = map[string]any{
	"type":     "object",
	"required": []string{"error", "message"},
	"properties": map[string]any{
		"error":      map[string]any{"type": "string", "minLength": 1},
		"message":    map[string]any{"type": "string", "minLength": 1},
		"code":       map[string]any{"type": "string"},
		"retryAfter": map[string]any{"type": "integer", "minimum": 0},
	},
}

// variantSchema wraps a payload schema in the {data, statusCode, delay} envelope.
func variantSchema(data map[string]any) map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"data", "statusCode"},
		"properties": map[string]any{
			"data":       data,
			"statusCode": map[string]any{"type": "integer", "minimum": 100, "maximum": 599},
			"delay":      map[string]any{"type": "number", "minimum": 0},
		},
	}
}
