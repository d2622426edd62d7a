// internal/cli/health.go
package ideamock

import (
	"fmt"

	"github.com/mwiater/ideamock/internal/ai"
	"github.com/mwiater/ideamock/internal/scenario"
	"github.com/spf13/cobra"
)

// healthCmd implements 'health', which checks both mock services.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Report the health status of the mock services",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices(*GetConfig())
		if err != nil {
			return err
		}
		defer svc.Close()

		out := cmd.OutOrStdout()
		checks := []struct {
			name   string
			status ai.HealthStatus
		}{
			{"analysis", svc.analysis.HealthCheck(cmd.Context())},
			{"frankenstein", svc.frankenstein.HealthCheck(cmd.Context())},
		}
		for _, p := range checks {
			fmt.Fprintf(out, "%-13s %s (scenario: %s, mock: %t)\n", p.name, healthText(p.status.Status), p.status.Scenario, p.status.Mock)
		}
		return nil
	},
}

func healthText(status string) string {
	switch scenario.Health(status) {
	case scenario.Healthy:
		return successText(status)
	case scenario.Degraded:
		return warnText(status)
	default:
		return failText(status)
	}
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
