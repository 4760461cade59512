package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oceanline/lubeplan-go/internal/application/common"
	"github.com/oceanline/lubeplan-go/internal/application/optimization/commands"
	"github.com/oceanline/lubeplan-go/internal/domain/planning"
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
)

// NewOptimizeCommand creates the optimize command
func NewOptimizeCommand() *cobra.Command {
	var (
		vesselIMO string
		robCyl    float64
		robME     float64
		robAE     float64
		topN      int
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Run the replenishment optimizer for a vessel",
		Long: `Run the full multi-strategy optimization for a vessel against its
persisted schedule. Current remaining-on-board levels must be supplied
per grade; everything else comes from stored master data.

Example:
  lubeplan optimize --vessel 9391001 --rob-cyl 12000 --rob-me 9000 --rob-ae 7000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := BuildContainer(configPath)
			if err != nil {
				return err
			}
			defer c.Close()

			logger := newConsoleLogger(c.Config.Logging.Format, verbose)
			ctx := common.WithLogger(context.Background(), logger)

			opts := c.Config.Optimizer.OrchestratorOptions()
			if topN > 0 {
				opts.TopN = topN
			}
			if workers > 0 {
				opts.Workers = workers
			}
			reorder := c.Config.Optimizer.ReorderConfig()

			response, err := c.Mediator.Send(ctx, &commands.RunOptimizationCommand{
				VesselIMO: vesselIMO,
				CurrentROB: map[shared.Grade]float64{
					shared.GradeCylinder:   robCyl,
					shared.GradeMainEngine: robME,
					shared.GradeAuxEngine:  robAE,
				},
				Reorder: &reorder,
				Options: &opts,
			})
			if err != nil {
				return err
			}

			result := response.(*commands.RunOptimizationResult)
			printRunResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&vesselIMO, "vessel", "", "Vessel IMO number (required)")
	cmd.Flags().Float64Var(&robCyl, "rob-cyl", 0, "Current cylinder oil on board, liters (required)")
	cmd.Flags().Float64Var(&robME, "rob-me", 0, "Current main engine system oil on board, liters (required)")
	cmd.Flags().Float64Var(&robAE, "rob-ae", 0, "Current aux engine system oil on board, liters (required)")
	cmd.Flags().IntVar(&topN, "top", 0, "Ranked plans to return (default from config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Grid search workers (default: one per CPU)")
	_ = cmd.MarkFlagRequired("vessel")
	_ = cmd.MarkFlagRequired("rob-cyl")
	_ = cmd.MarkFlagRequired("rob-me")
	_ = cmd.MarkFlagRequired("rob-ae")

	return cmd
}

func printRunResult(result *commands.RunOptimizationResult) {
	r := result.Result

	fmt.Printf("Optimization run %s for %s (%s)\n", result.RunID, result.Vessel.Name, result.Vessel.IMO)
	fmt.Printf("Evaluated %d combinations (%d grid) in %s\n",
		r.CombinationsEvaluated, r.GridCombinations, r.Elapsed.Round(0))
	fmt.Printf("Reactive baseline: %s over %d delivery events\n\n",
		formatMoney(r.Baseline.TotalCost), r.Baseline.PurchaseEvents)

	fmt.Printf("%-4s %-16s %-42s %12s %12s %8s %6s\n",
		"Rank", "Strategy", "Parameters", "All-in cost", "Savings", "Events", "Safe")
	for _, plan := range r.Plans {
		fmt.Printf("%-4d %-16s %-42s %12s %12s %8d %6t\n",
			plan.Rank, plan.Strategy, plan.Label,
			formatMoney(plan.AllInCost), formatMoney(plan.Savings),
			plan.Output.PurchaseEvents, plan.Safety.Safe)
	}

	if len(r.Plans) > 0 {
		fmt.Println()
		printPlanDetail(r.Plans[0])
	}
}

func printPlanDetail(plan *planning.RankedPlan) {
	fmt.Printf("Best plan (%s, %s):\n", plan.Strategy, plan.Label)
	for _, port := range plan.Output.Ports {
		if !port.Purchases() && !hasAlert(&port) {
			continue
		}
		fmt.Printf("  %s (%s) arriving %s\n", port.PortName, port.PortCode, port.Arrival)
		for _, g := range shared.AllGrades() {
			gp := port.Grades[g]
			if gp == nil || (gp.Quantity == 0 && gp.Action != planning.ActionAlert) {
				continue
			}
			fmt.Printf("    %-7s %-6s %10s @ %.3f/L = %s\n",
				g, gp.Action, formatLiters(gp.Quantity), gp.Price, formatMoney(gp.OilCost))
		}
		if port.Delivery.Total > 0 {
			fmt.Printf("    delivery charge %s\n", formatMoney(port.Delivery.Total))
		}
	}
}

func hasAlert(port *planning.PortPlan) bool {
	for _, gp := range port.Grades {
		if gp.Action == planning.ActionAlert {
			return true
		}
	}
	return false
}
