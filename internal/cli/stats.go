// internal/cli/stats.go
package ideamock

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mwiater/ideamock/internal/ai"
	"github.com/mwiater/ideamock/internal/fixtures"
	"github.com/mwiater/ideamock/internal/metrics"
	"github.com/mwiater/ideamock/internal/mock"
	"github.com/mwiater/ideamock/internal/schema"
	"github.com/spf13/cobra"
)

// statsCmd implements 'stats', which drives a batch of mock calls and
// reports their timings and the fixture cache behaviour.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Run a batch of mock calls and report performance statistics",
	Long: `The 'stats' command makes --calls mock calls of each requested response type, then prints
per-method timing statistics and fixture cache counters. With --report the timings are also
written as a JSON report.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		calls, _ := cmd.Flags().GetInt("calls")
		typeName, _ := cmd.Flags().GetString("type")
		reportPath, _ := cmd.Flags().GetString("report")
		saveReport, _ := cmd.Flags().GetBool("save")
		if calls < 1 {
			return fmt.Errorf("--calls must be at least 1, got %d", calls)
		}

		types := schema.ResponseTypes()
		if typeName != "" {
			t, err := schema.ParseResponseType(typeName)
			if err != nil {
				return err
			}
			types = []schema.ResponseType{t}
		}

		svc, err := newServices(*GetConfig())
		if err != nil {
			return err
		}
		defer svc.Close()

		failures := 0
		for i := 0; i < calls; i++ {
			for _, t := range types {
				if err := callOnce(cmd, svc, t); err != nil {
					var serr *mock.ServiceError
					if !errors.As(err, &serr) {
						return err
					}
					failures++
				}
			}
		}

		out := cmd.OutOrStdout()
		printStats(out, svc.recorder.Summaries(), svc.store.CacheStats())
		if failures > 0 {
			fmt.Fprintf(out, "%s %d simulated failures\n", warnText("!"), failures)
		}

		if reportPath == "" && saveReport {
			reportPath = GetConfig().ReportFilePath()
		}
		if reportPath != "" {
			if err := svc.recorder.SaveReport(reportPath); err != nil {
				return err
			}
			fmt.Fprintf(out, "Report written to %s\n", reportPath)
		}
		return nil
	},
}

// callOnce makes one representative call for t.
func callOnce(cmd *cobra.Command, svc *services, t schema.ResponseType) error {
	ctx := cmd.Context()
	var err error
	switch t {
	case fixtures.Analyzer:
		_, err = svc.analysis.AnalyzeIdea(ctx, "A marketplace that matches retired engineers with student projects", "en")
	case fixtures.Hackathon:
		_, err = svc.analysis.AnalyzeHackathonProject(ctx, ai.HackathonSubmission{
			Description: "Offline-first triage app for field medics",
			Category:    "health",
		}, "en")
	case fixtures.Frankenstein:
		_, err = svc.frankenstein.GenerateFrankensteinIdea(ctx, []ai.Element{{Name: "Slack"}, {Name: "Trello"}}, "companies", "en")
	}
	return err
}

func printStats(out io.Writer, summaries []metrics.MethodSummary, cache fixtures.Stats) {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("METHOD", "CALLS", "MEAN MS", "MIN MS", "MAX MS", "STDDEV").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeader
			}
			return tableCell
		})
	for _, s := range summaries {
		tbl.Row(
			s.Method,
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%.2f", s.Stats.Mean),
			fmt.Sprintf("%.2f", s.Stats.Min),
			fmt.Sprintf("%.2f", s.Stats.Max),
			fmt.Sprintf("%.2f", s.Stats.StdDev),
		)
	}
	fmt.Fprintln(out, tbl.Render())
	fmt.Fprintf(out, "Cache: %d entries, %d hits, %d misses (%.0f%% hit rate)\n",
		cache.Entries, cache.Hits, cache.Misses, cache.HitRate()*100)
}

func init() {
	statsCmd.Flags().Int("calls", 10, "number of calls per response type")
	statsCmd.Flags().String("type", "", "only call this response type (analyzer, frankenstein, hackathon)")
	statsCmd.Flags().String("report", "", "write a JSON performance report to this path")
	statsCmd.Flags().Bool("save", false, "write the JSON report to the configured report path")

	rootCmd.AddCommand(statsCmd)
}
