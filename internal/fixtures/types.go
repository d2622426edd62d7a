// internal/fixtures/types.go
package fixtures

import (
	"errors"

	"github.com/mwiater/ideamock/internal/schema"
)

// ResponseType identifies which AI operation a fixture file stands in for.
type ResponseType = schema.ResponseType

const (
	Analyzer     = schema.Analyzer
	Hackathon    = schema.Hackathon
	Frankenstein = schema.Frankenstein
)

var (
	// ErrNotFound reports a missing fixture file or an empty scenario.
	ErrNotFound = errors.New("fixture not found")
	// ErrUnknownType reports a response type outside the closed set.
	ErrUnknownType = errors.New("unknown response type")
	// ErrValidation reports schema failures while in strict mode.
	ErrValidation = errors.New("fixture validation failed")
)

// Variant is one stored response for a scenario.
type Variant struct {
	Data       map[string]any `json:"data" mapstructure:"data"`
	StatusCode int            `json:"statusCode" mapstructure:"statusCode"`
	Delay      *int           `json:"delay,omitempty" mapstructure:"delay"`
}

// IsError reports whether Data is an {error, message} payload.
func (v Variant) IsError() bool {
	_, ok := v.Data["error"]
	return ok
}

// Clone returns a deep copy of v.
func (v Variant) Clone() Variant {
	out := Variant{StatusCode: v.StatusCode}
	if v.Data != nil {
		out.Data = CloneValue(v.Data).(map[string]any)
	}
	if v.Delay != nil {
		d := *v.Delay
		out.Delay = &d
	}
	return out
}

// File is every scenario's variants for one response type.
type File struct {
	Type      ResponseType         `json:"-" mapstructure:"-"`
	Scenarios map[string][]Variant `json:"scenarios" mapstructure:"scenarios"`

	// raw keeps the decoded documents, including variants that could not be
	// converted to a Variant, so validation can report on every one of them.
	raw map[string][]any
}

// Clone returns a deep copy of f.
func (f *File) Clone() *File {
	out := &File{Type: f.Type, Scenarios: make(map[string][]Variant, len(f.Scenarios))}
	for name, variants := range f.Scenarios {
		copied := make([]Variant, len(variants))
		for i, v := range variants {
			copied[i] = v.Clone()
		}
		out.Scenarios[name] = copied
	}
	if f.raw != nil {
		out.raw = make(map[string][]any, len(f.raw))
		for name, docs := range f.raw {
			out.raw[name] = CloneValue(docs).([]any)
		}
	}
	return out
}

// documents returns the raw variant documents, falling back to the typed
// variants for files built without them.
func (f *File) documents() map[string][]any {
	if f.raw != nil {
		return f.raw
	}
	docs := make(map[string][]any, len(f.Scenarios))
	for name, variants := range f.Scenarios {
		list := make([]any, len(variants))
		for i, v := range variants {
			list[i] = v
		}
		docs[name] = list
	}
	return docs
}

// CloneValue deep-copies JSON-shaped values: maps, slices and scalars.
func CloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = CloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = CloneValue(val)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}

// Stats reports cache effectiveness.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// HitRate is hits over total lookups, 0 when nothing was looked up.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
