// internal/customize/merge.go
package customize

import "github.com/mwiater/ideamock/internal/fixtures"

type valueKind int

const (
	kindAbsent valueKind = iota
	kindObject
	kindArray
	kindScalar
)

func kindOf(v any) valueKind {
	switch v.(type) {
	case nil:
		return kindAbsent
	case map[string]any:
		return kindObject
	case []any:
		return kindArray
	default:
		return kindScalar
	}
}

// Clone deep-copies a JSON-shaped value.
func Clone(v any) any {
	return fixtures.CloneValue(v)
}

// Merge returns a deep copy of dst with src laid over it. Objects merge key by
// key, arrays and scalars replace, and nil values in src leave dst alone.
// Neither argument is modified.
func Merge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = Clone(v)
	}
	for k, v := range src {
		switch kindOf(v) {
		case kindAbsent:
			continue
		case kindObject:
			base, _ := out[k].(map[string]any)
			out[k] = Merge(base, v.(map[string]any))
		case kindArray, kindScalar:
			out[k] = Clone(v)
		}
	}
	return out
}
