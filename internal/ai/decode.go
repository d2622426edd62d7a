// internal/ai/decode.go
package ai

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode converts a generic JSON-shaped map into one of the typed payloads,
// matching fields by their json tags. Unknown keys are ignored.
func Decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("create payload decoder: %w", err)
	}
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
