// internal/featureflags/source.go
package featureflags

import (
	"strings"

	"github.com/spf13/viper"
)

// Source supplies raw, string-typed flag values.
type Source interface {
	GetString(key string) string
	IsSet(key string) bool
}

// ViperSource reads flags through viper: config file keys first, then the
// process environment.
type ViperSource struct {
	v *viper.Viper
}

// NewViperSource wraps v and enables automatic environment lookup.
// A nil v gets a fresh viper instance.
func NewViperSource(v *viper.Viper) *ViperSource {
	if v == nil {
		v = viper.New()
	}
	v.AutomaticEnv()
	return &ViperSource{v: v}
}

// GetString returns the value for key as a string.
func (s *ViperSource) GetString(key string) string { return s.v.GetString(key) }

// IsSet reports whether key has a value in any viper layer.
func (s *ViperSource) IsSet(key string) bool { return s.v.IsSet(key) }

// MapSource is a fixed set of values, keyed case-insensitively.
type MapSource map[string]string

// GetString returns the value for key.
func (s MapSource) GetString(key string) string {
	v, _ := s.lookup(key)
	return v
}

// IsSet reports whether key is present.
func (s MapSource) IsSet(key string) bool {
	_, ok := s.lookup(key)
	return ok
}

func (s MapSource) lookup(key string) (string, bool) {
	if v, ok := s[key]; ok {
		return v, true
	}
	for k, v := range s {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}
