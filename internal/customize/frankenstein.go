// internal/customize/frankenstein.go
package customize

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/mwiater/ideamock/internal/util"
)

// Frankenstein combination modes.
const (
	ModeCompanies = "companies"
	ModeAWS       = "aws"
)

const (
	metricOriginality = "originality_score"
	metricFeasibility = "feasibility_score"
	metricImpact      = "impact_score"
	metricScalability = "scalability_score"
	metricWow         = "wow_factor"
)

var metricNames = []string{metricOriginality, metricFeasibility, metricImpact, metricScalability, metricWow}

// Per extra element beyond two.
const (
	originalityPerElement = 6
	originalityBonusCap   = 20
	wowPerElement         = 5
	feasibilityPerElement = 7
)

const (
	awsScalabilityBonus   = 12
	awsFeasibilityBonus   = 5
	awsFeasibilityFloor   = 50
	synergyImpactBonus    = 8
	synergyWowBonus       = 6
	synergyFeasibilityMin = 40
)

type awsRewrite struct {
	pattern *regexp.Regexp
	service string
}

var awsRewrites = []awsRewrite{
	{regexp.MustCompile(`(?i)cloud hosting`), "AWS Lambda behind Amazon API Gateway"},
	{regexp.MustCompile(`(?i)(a |an )?(managed |relational )?database`), "Amazon DynamoDB"},
	{regexp.MustCompile(`(?i)object storage|file storage`), "Amazon S3"},
	{regexp.MustCompile(`(?i)(a )?message queue`), "Amazon SQS"},
	{regexp.MustCompile(`(?i)machine learning`), "Amazon SageMaker"},
	{regexp.MustCompile(`(?i)authentication( via a hosted identity provider)?`), "Amazon Cognito authentication"},
}

const defaultAWSStack = "AWS Lambda behind Amazon API Gateway, Amazon DynamoDB and Amazon S3."

func titleSuffix(n int) string {
	switch {
	case n <= 2:
		return "Fusion Platform"
	case n == 3:
		return "Integration Hub"
	default:
		return "Ecosystem"
	}
}

func customizeFrankenstein(data, input map[string]any) {
	names := stringSlice(input["elements"])
	mode := strings.ToLower(stringValue(input["mode"]))
	if len(names) < 2 {
		return
	}

	data["idea_title"] = strings.Join(names, " + ") + " " + titleSuffix(len(names))
	desc, _ := data["idea_description"].(string)
	desc = "By combining " + util.JoinHuman(names) + ", " + util.LowerFirst(desc)

	m, ok := data["metrics"].(map[string]any)
	if !ok {
		m = map[string]any{}
		data["metrics"] = m
	}
	scores := make(map[string]float64, len(metricNames))
	for _, name := range metricNames {
		scores[name] = toFloat(m[name])
	}

	extra := float64(len(names) - 2)
	scores[metricOriginality] += math.Min(originalityPerElement*extra, originalityBonusCap)
	scores[metricWow] += wowPerElement * extra
	scores[metricFeasibility] -= feasibilityPerElement * extra

	switch mode {
	case ModeAWS:
		data["tech_stack"] = rewriteForAWS(data["tech_stack"])
		scores[metricScalability] += awsScalabilityBonus
		scores[metricFeasibility] = math.Max(scores[metricFeasibility]+awsFeasibilityBonus, awsFeasibilityFloor)
	case ModeCompanies:
		desc = strings.TrimSpace(desc) + " " + synergySentence(names[0], names[1])
		scores[metricImpact] += synergyImpactBonus
		scores[metricWow] += synergyWowBonus
		if len(names) > 3 {
			scores[metricFeasibility] = math.Max(scores[metricFeasibility], synergyFeasibilityMin)
		}
	}
	data["idea_description"] = desc

	for _, name := range metricNames {
		m[name] = util.Clamp(scores[name], 0, 100)
	}
}

func synergySentence(a, b string) string {
	return fmt.Sprintf("The synergy between %s and %s is the core of the pitch: %s brings the audience, %s brings the workflow.", a, b, a, b)
}

func rewriteForAWS(v any) string {
	stack, _ := v.(string)
	if strings.TrimSpace(stack) == "" {
		return defaultAWSStack
	}
	out := stack
	for _, r := range awsRewrites {
		out = r.pattern.ReplaceAllString(out, r.service)
	}
	if out == stack {
		out = strings.TrimSpace(out) + " Deployed on " + defaultAWSStack
	}
	return out
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
