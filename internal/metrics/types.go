// internal/metrics/types.go
package metrics

import "time"

// Report is the document written by SaveReport.
type Report struct {
	GeneratedUTC time.Time       `json:"generated_utc"`
	Window       int             `json:"window"`
	Methods      []MethodSummary `json:"methods"`
}

// MethodSummary aggregates the retained samples for one service method.
type MethodSummary struct {
	Method string      `json:"method"`
	Count  int         `json:"count"`
	Stats  RunningStat `json:"duration_ms"`
}

// RunningStat holds the values for online calculation of mean, variance and stddev.
type RunningStat struct {
	Count  int64   `json:"-"`
	Total  float64 `json:"total"`
	Mean   float64 `json:"mean"`
	M2     float64 `json:"-"` // Sum of squares of differences from the current mean
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}
