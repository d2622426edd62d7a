// internal/mock/errors.go
package mock

import (
	"errors"
	"fmt"
	"time"

	"github.com/mwiater/ideamock/internal/scenario"
)

var (
	// ErrInvalidRequest reports a call rejected before any simulation ran.
	ErrInvalidRequest = errors.New("invalid request")

	ErrAPI             = errors.New("api error")
	ErrTimeout         = errors.New("timeout")
	ErrRateLimited     = errors.New("rate limited")
	ErrInvalidInput    = errors.New("invalid input")
	ErrPartialResponse = errors.New("partial response")
)

var codeSentinels = map[string]error{
	"API_ERROR":        ErrAPI,
	"TIMEOUT":          ErrTimeout,
	"RATE_LIMIT":       ErrRateLimited,
	"INVALID_INPUT":    ErrInvalidInput,
	"PARTIAL_RESPONSE": ErrPartialResponse,
}

const defaultRetryAfter = 60 * time.Second

// ServiceError is a synthesized failure. Callers branch on Code or with
// errors.Is against the package sentinels. Code is always one of the
// scenario codes; a fixture's own code ends up in Detail.
type ServiceError struct {
	Code       string
	StatusCode int
	Message    string
	Detail     string
	Scenario   scenario.TestScenario
	RetryAfter time.Duration
	// Partial holds the incomplete payload of a partial_response failure.
	Partial map[string]any
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// Is matches the sentinel for e.Code.
func (e *ServiceError) Is(target error) bool {
	s, ok := codeSentinels[e.Code]
	return ok && s == target
}

func invalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
