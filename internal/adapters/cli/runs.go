package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oceanline/lubeplan-go/internal/application/optimization"
	"github.com/oceanline/lubeplan-go/internal/application/optimization/queries"
)

// NewRunsCommand creates the runs command with subcommands
func NewRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect persisted optimization runs",
		Long: `Inspect the history of optimization runs stored for each vessel.

Examples:
  lubeplan runs list --vessel 9391001
  lubeplan runs show 7f3c9a1e-...`,
	}

	cmd.AddCommand(newRunsListCommand())
	cmd.AddCommand(newRunsShowCommand())

	return cmd
}

func newRunsListCommand() *cobra.Command {
	var vesselIMO string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs for a vessel, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := BuildContainer(configPath)
			if err != nil {
				return err
			}
			defer c.Close()

			response, err := c.Mediator.Send(context.Background(), &queries.ListRunsQuery{
				VesselIMO: vesselIMO,
				Limit:     limit,
			})
			if err != nil {
				return err
			}

			runs := response.([]*optimization.RunRecord)
			if len(runs) == 0 {
				fmt.Printf("No runs stored for vessel %s\n", vesselIMO)
				return nil
			}

			fmt.Printf("%-36s %-20s %12s %12s %12s %6s\n",
				"Run ID", "Created", "Baseline", "Best cost", "Savings", "Safe")
			for _, run := range runs {
				fmt.Printf("%-36s %-20s %12s %12s %12s %6t\n",
					run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"),
					formatMoney(run.BaselineCost), formatMoney(run.BestCost),
					formatMoney(run.BestSavings), run.BestSafe)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&vesselIMO, "vessel", "", "Vessel IMO number (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum runs to list")
	_ = cmd.MarkFlagRequired("vessel")
	return cmd
}

func newRunsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run with its ranked plans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := BuildContainer(configPath)
			if err != nil {
				return err
			}
			defer c.Close()

			response, err := c.Mediator.Send(context.Background(), &queries.GetRunQuery{
				RunID: args[0],
			})
			if err != nil {
				return err
			}

			run := response.(*optimization.RunRecord)
			fmt.Printf("Run %s for vessel %s\n", run.ID, run.VesselIMO)
			fmt.Printf("Created:   %s\n", run.CreatedAt.Format(time.RFC3339))
			fmt.Printf("Evaluated: %d combinations (%d grid) in %dms\n",
				run.CombinationsEvaluated, run.GridCombinations, run.ElapsedMillis)
			fmt.Printf("Baseline:  %s\n", formatMoney(run.BaselineCost))
			fmt.Printf("Best:      %s (savings %s, safe=%t)\n\n",
				formatMoney(run.BestCost), formatMoney(run.BestSavings), run.BestSafe)

			fmt.Printf("%-4s %-16s %-42s %12s %12s %6s\n",
				"Rank", "Strategy", "Parameters", "All-in cost", "Savings", "Safe")
			for _, plan := range run.Plans {
				fmt.Printf("%-4d %-16s %-42s %12s %12s %6t\n",
					plan.Rank, plan.Strategy, plan.Label,
					formatMoney(plan.AllInCost), formatMoney(plan.Savings), plan.Safety.Safe)
			}

			if len(run.Plans) > 0 {
				fmt.Println()
				printPlanDetail(run.Plans[0])
			}
			return nil
		},
	}
}
