// internal/cli/output.go
package ideamock

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/mwiater/ideamock/internal/mock"
)

var (
	successText = color.New(color.FgGreen).SprintFunc()
	warnText    = color.New(color.FgYellow).SprintFunc()
	failText    = color.New(color.FgRed).SprintFunc()
	dimText     = color.New(color.Faint).SprintFunc()
)

// writeResult prints v as indented JSON, or through pp when pretty is set.
func writeResult(out io.Writer, v any, pretty bool) error {
	if pretty {
		_, err := pp.Fprintln(out, v)
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describeError renders a mock failure with its code and retry hint.
func describeError(out io.Writer, err error) {
	var serr *mock.ServiceError
	if !errors.As(err, &serr) {
		fmt.Fprintf(out, "%s %v\n", failText("error:"), err)
		return
	}
	fmt.Fprintf(out, "%s %s (HTTP %d) %s\n", failText("mock failure:"), serr.Code, serr.StatusCode, serr.Message)
	fmt.Fprintf(out, "  %s %s\n", dimText("scenario:"), serr.Scenario)
	if serr.Detail != "" {
		fmt.Fprintf(out, "  %s %s\n", dimText("detail:"), serr.Detail)
	}
	if serr.RetryAfter > 0 {
		fmt.Fprintf(out, "  %s %s\n", dimText("retry after:"), serr.RetryAfter)
	}
	if len(serr.Partial) > 0 {
		fmt.Fprintf(out, "  %s %d fields\n", dimText("partial payload:"), len(serr.Partial))
	}
}

// rateColor picks a colour for a pass rate.
func rateColor(rate float64) func(a ...interface{}) string {
	switch {
	case rate >= 100:
		return successText
	case rate >= 80:
		return warnText
	default:
		return failText
	}
}
