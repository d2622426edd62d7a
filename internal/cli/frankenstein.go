// internal/cli/frankenstein.go
package ideamock

import (
	"context"
	"strings"

	"github.com/mwiater/ideamock/internal/ai"
	"github.com/mwiater/ideamock/internal/mock"
	"github.com/mwiater/ideamock/internal/tui"
	"github.com/spf13/cobra"
)

// frankensteinCmd implements 'frankenstein', which stitches two or more
// elements into one mock idea.
var frankensteinCmd = &cobra.Command{
	Use:   "frankenstein <element>...",
	Short: "Generate a mock Frankenstein idea from two or more elements",
	Long: `The 'frankenstein' command combines the given elements into one idea using the mock
generator. Each element is a name, optionally followed by ':' and a description,
for example "Slack:team chat". Use --mode aws to combine AWS services instead of companies.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")
		language, _ := cmd.Flags().GetString("language")
		pretty, _ := cmd.Flags().GetBool("pretty")
		withSpinner, _ := cmd.Flags().GetBool("spinner")

		svc, err := newServices(*GetConfig())
		if err != nil {
			return err
		}
		defer svc.Close()

		elements := parseElements(args)
		generate := func(ctx context.Context) (*ai.FrankensteinIdea, error) {
			return svc.frankenstein.GenerateFrankensteinIdea(ctx, elements, mode, language)
		}

		var idea *ai.FrankensteinIdea
		if withSpinner {
			idea, err = tui.RunWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Stitching "+strings.Join(ai.ElementNames(elements), " + "), generate)
		} else {
			idea, err = generate(cmd.Context())
		}
		if err != nil {
			describeError(cmd.ErrOrStderr(), err)
			return err
		}
		return writeResult(cmd.OutOrStdout(), idea, pretty)
	},
}

// parseElements turns "Name" or "Name:description" arguments into elements.
func parseElements(args []string) []ai.Element {
	elements := make([]ai.Element, 0, len(args))
	for _, arg := range args {
		name, desc, _ := strings.Cut(arg, ":")
		elements = append(elements, ai.Element{
			Name:        strings.TrimSpace(name),
			Description: strings.TrimSpace(desc),
		})
	}
	return elements
}

func init() {
	frankensteinCmd.Flags().String("mode", "companies", "combination mode ("+strings.Join(mock.Modes(), ", ")+")")
	frankensteinCmd.Flags().String("language", "en", "response language (en, es)")
	frankensteinCmd.Flags().Bool("spinner", false, "show a spinner while the idea is generated")
	frankensteinCmd.Flags().Bool("pretty", false, "pretty-print the Go value instead of JSON")

	rootCmd.AddCommand(frankensteinCmd)
}
