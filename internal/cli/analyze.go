// internal/cli/analyze.go
package ideamock

import (
	"strings"

	"github.com/mwiater/ideamock/internal/ai"
	"github.com/spf13/cobra"
)

// analyzeCmd implements 'analyze', which runs one mock idea analysis.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <idea>",
	Short: "Run a mock idea analysis",
	Long: `The 'analyze' command calls the mock analysis service with the given idea and prints
the customised fixture response as JSON. The active scenario decides whether a success
payload or a simulated failure is returned.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		locale, _ := cmd.Flags().GetString("locale")
		pretty, _ := cmd.Flags().GetBool("pretty")

		svc, err := newServices(*GetConfig())
		if err != nil {
			return err
		}
		defer svc.Close()

		analysis, err := svc.analysis.AnalyzeIdea(cmd.Context(), strings.Join(args, " "), locale)
		if err != nil {
			describeError(cmd.ErrOrStderr(), err)
			return err
		}
		return writeResult(cmd.OutOrStdout(), analysis, pretty)
	},
}

// hackathonCmd implements 'hackathon', which runs one mock hackathon evaluation.
var hackathonCmd = &cobra.Command{
	Use:   "hackathon <description>",
	Short: "Run a mock hackathon project evaluation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		locale, _ := cmd.Flags().GetString("locale")
		pretty, _ := cmd.Flags().GetBool("pretty")

		svc, err := newServices(*GetConfig())
		if err != nil {
			return err
		}
		defer svc.Close()

		sub := ai.HackathonSubmission{Description: strings.Join(args, " "), Category: category}
		analysis, err := svc.analysis.AnalyzeHackathonProject(cmd.Context(), sub, locale)
		if err != nil {
			describeError(cmd.ErrOrStderr(), err)
			return err
		}
		return writeResult(cmd.OutOrStdout(), analysis, pretty)
	},
}

func init() {
	analyzeCmd.Flags().String("locale", "en", "response locale (en, es)")
	analyzeCmd.Flags().Bool("pretty", false, "pretty-print the Go value instead of JSON")

	hackathonCmd.Flags().String("category", "", "hackathon category to evaluate against")
	hackathonCmd.Flags().String("locale", "en", "response locale (en, es)")
	hackathonCmd.Flags().Bool("pretty", false, "pretty-print the Go value instead of JSON")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(hackathonCmd)
}
