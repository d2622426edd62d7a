// internal/customize/locale.go
package customize

import (
	"strings"

	"github.com/mwiater/ideamock/internal/fixtures"
)

var spanishText = map[string]string{
	"detailedSummary":       "Esta idea aborda un problema real para su público objetivo. El análisis muestra una propuesta clara con margen de mejora en la diferenciación frente a la competencia.",
	"viabilitySummary":      "La idea es viable si se enfoca primero en un segmento inicial bien definido y valida la disposición a pagar.",
	"finalScoreExplanation": "La puntuación refleja una demanda sólida del mercado, equilibrada por una competencia significativa y riesgos de ejecución.",
}

// applyLocale swaps known fields for fixed translations. Only "es" is
// translated; every other locale leaves the data as stored.
func applyLocale(data map[string]any, t fixtures.ResponseType, locale string) {
	if strings.ToLower(strings.TrimSpace(locale)) != "es" {
		return
	}
	for field, text := range spanishText {
		if _, ok := data[field]; ok {
			data[field] = text
		}
	}
	if t == fixtures.Frankenstein {
		data["language"] = "es"
	}
}
