package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oceanline/lubeplan-go/internal/domain/schedule"
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
)

// NewScheduleCommand creates the schedule command with subcommands
func NewScheduleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage vessel schedules and port prices",
		Long: `Manage each vessel's upcoming port rotation, including per-grade
prices and port delivery charge configuration.

Examples:
  lubeplan schedule import --vessel 9391001 --file rotation.json
  lubeplan schedule show --vessel 9391001`,
	}

	cmd.AddCommand(newScheduleImportCommand())
	cmd.AddCommand(newScheduleShowCommand())

	return cmd
}

func newScheduleImportCommand() *cobra.Command {
	var vesselIMO, file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a vessel's rotation from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			bytes, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			var voyage schedule.Voyage
			if err := json.Unmarshal(bytes, &voyage); err != nil {
				return fmt.Errorf("invalid schedule file %s: %w", file, err)
			}
			if len(voyage) == 0 {
				return fmt.Errorf("schedule file %s holds no port stops", file)
			}

			c, err := BuildContainer(configPath)
			if err != nil {
				return err
			}
			defer c.Close()

			if _, err := c.Vessels.FindByIMO(context.Background(), vesselIMO); err != nil {
				return err
			}
			if err := c.Schedules.Save(context.Background(), vesselIMO, voyage); err != nil {
				return err
			}
			fmt.Printf("✓ Imported %d port stops for vessel %s\n", len(voyage), vesselIMO)
			return nil
		},
	}

	cmd.Flags().StringVar(&vesselIMO, "vessel", "", "Vessel IMO number (required)")
	cmd.Flags().StringVar(&file, "file", "", "Path to the schedule JSON file (required)")
	_ = cmd.MarkFlagRequired("vessel")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newScheduleShowCommand() *cobra.Command {
	var vesselIMO string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a vessel's stored rotation",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := BuildContainer(configPath)
			if err != nil {
				return err
			}
			defer c.Close()

			voyage, err := c.Schedules.VoyageForVessel(context.Background(), vesselIMO)
			if err != nil {
				return err
			}

			fmt.Printf("%-3s %-16s %-6s %-20s %8s  %s\n", "#", "Port", "Code", "Arrival", "Sea days", "Prices")
			for i, stop := range voyage {
				prices := "-"
				if stop.HasAnyPrice() {
					prices = ""
					for _, g := range shared.AllGrades() {
						if price, ok := stop.PriceFor(g); ok {
							prices += fmt.Sprintf("%s=%.3f ", g, price)
						}
					}
				}
				fmt.Printf("%-3d %-16s %-6s %-20s %8.1f  %s\n",
					i, stop.Name, stop.Code, stop.Arrival, stop.SeaDaysToNext, prices)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&vesselIMO, "vessel", "", "Vessel IMO number (required)")
	_ = cmd.MarkFlagRequired("vessel")
	return cmd
}
