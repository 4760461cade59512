package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lubeplan",
		Short: "Lube oil replenishment planner for vessel fleets",
		Long: `Lubeplan plans lube oil replenishment across a vessel's upcoming port
rotation: it simulates remaining-on-board levels, prices every delivery
event, and searches a family of purchasing strategies for the cheapest
safe plan.

Examples:
  lubeplan vessels import --file fleet.json
  lubeplan schedule import --vessel 9391001 --file rotterdam-rotation.json
  lubeplan optimize --vessel 9391001 --rob-cyl 12000 --rob-me 9000 --rob-ae 7000
  lubeplan runs list --vessel 9391001
  lubeplan runs show <run-id>`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: config.yaml in ., ./configs, /etc/lubeplan)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewOptimizeCommand())
	rootCmd.AddCommand(NewVesselsCommand())
	rootCmd.AddCommand(NewScheduleCommand())
	rootCmd.AddCommand(NewRunsCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
