// internal/cli/fixtures.go
package ideamock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mwiater/ideamock/internal/fixtures"
	"github.com/mwiater/ideamock/internal/schema"
	"github.com/spf13/cobra"
)

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Inspect and watch fixture files",
}

// fixturesListCmd implements 'fixtures list', which prints the scenarios
// available for each response type.
var fixturesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the scenarios available for each response type",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore(*GetConfig(), resolveFlags(), false)
		out := cmd.OutOrStdout()
		for _, t := range schema.ResponseTypes() {
			names, err := store.Scenarios(t)
			if err != nil {
				fmt.Fprintf(out, "%-13s %s\n", t, failText(err.Error()))
				continue
			}
			fmt.Fprintf(out, "%-13s %s\n", t, joinNames(names))
		}
		return nil
	},
}

// fixturesWatchCmd implements 'fixtures watch', which reloads and
// revalidates fixture files as they change.
var fixturesWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload fixture files when they change on disk",
	Long: `The 'fixtures watch' command watches a fixture directory and reloads each file as soon
as it is written, reporting whether the new contents load cleanly. Stop it with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *GetConfig()
		if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
			cfg.FixturesDir = dir
		}
		dir := cfg.FixturesDirPath()
		if dir == "" {
			return errors.New("fixtures watch needs a directory: pass --dir or set fixturesDir")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		store := newStore(cfg, resolveFlags(), true)
		w, err := fixtures.NewWatcher(store, dir, func(path string, t fixtures.ResponseType, err error) {
			if err != nil {
				fmt.Fprintf(out, "%s %s (%s): %v\n", failText("✗"), path, t, err)
				return
			}
			fmt.Fprintf(out, "%s reloaded %s (%s)\n", successText("✓"), path, t)
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(out, "Watching %s for fixture changes...\n", dir)
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return dimText("(none)")
	}
	return strings.Join(names, ", ")
}

func init() {
	fixturesWatchCmd.Flags().String("dir", "", "fixture directory to watch (default: fixturesDir)")

	fixturesCmd.AddCommand(fixturesListCmd)
	fixturesCmd.AddCommand(fixturesWatchCmd)
	rootCmd.AddCommand(fixturesCmd)
}
