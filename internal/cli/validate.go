// internal/cli/validate.go
package ideamock

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mwiater/ideamock/internal/fixtures"
	"github.com/mwiater/ideamock/internal/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var errValidationFailed = errors.New("fixture validation failed")

var (
	typeHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	tableHeader     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCell       = lipgloss.NewStyle().Padding(0, 1)
)

// typeReport is the validation outcome for one response type.
type typeReport struct {
	Type    schema.ResponseType
	Results []schema.ScenarioResult
}

// validateCmd implements 'validate', which checks fixture files against the
// response schemas and prints a per-scenario summary.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate fixture files against the response schemas",
	Long: `The 'validate' command checks every scenario variant of the fixture files against
the schema for its response type. Without --type all types are validated concurrently.
With --strict any failing variant makes the command exit with status 1.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		typeName, _ := cmd.Flags().GetString("type")
		verbose, _ := cmd.Flags().GetBool("verbose")
		strict := viper.GetBool("strict")

		cfg := *GetConfig()
		if dir, _ := cmd.Flags().GetString("fixtures"); dir != "" {
			cfg.FixturesDir = dir
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		types := schema.ResponseTypes()
		if typeName != "" {
			t, err := schema.ParseResponseType(typeName)
			if err != nil {
				return err
			}
			types = []schema.ResponseType{t}
		}

		// Always load leniently so every problem is reported, not just the first file.
		store := newStore(cfg, resolveFlags(), false)
		reports, err := validateTypes(store, types)
		if err != nil {
			return err
		}

		summary := printValidation(cmd.OutOrStdout(), reports, verbose)
		if strict && summary.Failed > 0 {
			return fmt.Errorf("%w: %d of %d variants invalid", errValidationFailed, summary.Failed, summary.Variants)
		}
		return nil
	},
}

// validateTypes validates each type in parallel and returns reports in the
// order of types.
func validateTypes(store *fixtures.Store, types []schema.ResponseType) ([]typeReport, error) {
	reports := make([]typeReport, len(types))
	var g errgroup.Group
	for i, t := range types {
		g.Go(func() error {
			results, err := store.ValidateAll(t)
			if err != nil {
				return fmt.Errorf("validate %s fixtures: %w", t, err)
			}
			reports[i] = typeReport{Type: t, Results: results}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// printValidation renders one table per type plus an overall pass rate.
func printValidation(out io.Writer, reports []typeReport, verbose bool) schema.Summary {
	var all []schema.ScenarioResult
	for _, r := range reports {
		fmt.Fprintln(out, typeHeaderStyle.Render(fmt.Sprintf("%s fixtures", r.Type)))

		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("SCENARIO", "VARIANTS", "PASSED", "FAILED").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return tableHeader
				}
				return tableCell
			})
		for _, sr := range r.Results {
			failed := strconv.Itoa(sr.Failed())
			if sr.Failed() > 0 {
				failed = failText(failed)
			}
			tbl.Row(sr.Scenario, strconv.Itoa(len(sr.Variants)), strconv.Itoa(sr.Passed()), failed)
		}
		fmt.Fprintln(out, tbl.Render())

		for _, sr := range r.Results {
			for _, v := range sr.Variants {
				if !verbose && v.Result.Valid {
					continue
				}
				for _, e := range v.Result.Errors {
					fmt.Fprintf(out, "  %s %s[%d] %s\n", failText("✗"), sr.Scenario, v.Index, e)
				}
				if verbose {
					for _, w := range v.Result.Warnings {
						fmt.Fprintf(out, "  %s %s[%d] %s\n", warnText("!"), sr.Scenario, v.Index, w)
					}
					if v.Result.Valid && len(v.Result.Warnings) == 0 {
						fmt.Fprintf(out, "  %s %s[%d] ok\n", successText("✓"), sr.Scenario, v.Index)
					}
				}
			}
		}
		all = append(all, r.Results...)
	}

	summary := schema.Summarize(all)
	rate := fmt.Sprintf("%.1f%%", summary.PassRate())
	fmt.Fprintf(out, "\nScenarios: %d  Variants: %d  Passed: %d  Failed: %d  Warnings: %d\n",
		summary.Scenarios, summary.Variants, summary.Passed, summary.Failed, summary.Warnings)
	fmt.Fprintf(out, "Pass rate: %s\n", rateColor(summary.PassRate())(rate))
	return summary
}

func init() {
	validateCmd.Flags().String("type", "", "response type to validate (analyzer, frankenstein, hackathon)")
	validateCmd.Flags().Bool("strict", false, "exit with status 1 when any variant is invalid")
	validateCmd.Flags().Bool("verbose", false, "print every variant, including warnings")
	validateCmd.Flags().String("fixtures", "", "validate fixtures from this directory instead of the configured ones")
	_ = viper.BindPFlag("strict", validateCmd.Flags().Lookup("strict"))

	rootCmd.AddCommand(validateCmd)
}
