package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oceanline/lubeplan-go/internal/domain/shared"
	"github.com/oceanline/lubeplan-go/internal/domain/vessel"
)

// NewVesselsCommand creates the vessels command with subcommands
func NewVesselsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vessels",
		Short: "Manage vessel master data",
		Long: `Manage the fleet's vessel master data: tank configuration, minimum
safe levels and daily consumption per grade.

Examples:
  lubeplan vessels list
  lubeplan vessels import --file fleet.json`,
	}

	cmd.AddCommand(newVesselsListCommand())
	cmd.AddCommand(newVesselsImportCommand())

	return cmd
}

func newVesselsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all vessels",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := BuildContainer(configPath)
			if err != nil {
				return err
			}
			defer c.Close()

			vessels, err := c.Vessels.ListAll(context.Background())
			if err != nil {
				return err
			}
			if len(vessels) == 0 {
				fmt.Println("No vessels stored. Import with: lubeplan vessels import --file fleet.json")
				return nil
			}

			fmt.Printf("%-10s %-24s %-10s %-12s %-12s\n", "IMO", "Name", "Grade", "Capacity", "Min ROB")
			for _, v := range vessels {
				for _, g := range shared.AllGrades() {
					cfg, ok := v.GradeConfigFor(g)
					if !ok {
						continue
					}
					fmt.Printf("%-10s %-24s %-10s %-12s %-12s\n",
						v.IMO, v.Name, g,
						formatLiters(cfg.Tank.CapacityLiters),
						formatLiters(cfg.Tank.MinimumROBLiters))
				}
			}
			return nil
		},
	}
}

// vesselImport is the JSON shape accepted by vessels import.
type vesselImport struct {
	IMO    string                              `json:"imo"`
	Name   string                              `json:"name"`
	Grades map[shared.Grade]vessel.GradeConfig `json:"grades"`
}

func newVesselsImportCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import vessels from a JSON file",
		Long: `Import vessel master data from a JSON file holding an array of
vessels with per-grade tank and consumption configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bytes, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			var imports []vesselImport
			if err := json.Unmarshal(bytes, &imports); err != nil {
				return fmt.Errorf("invalid vessel file %s: %w", file, err)
			}

			c, err := BuildContainer(configPath)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := context.Background()
			for _, imp := range imports {
				v, err := vessel.NewVessel(imp.IMO, imp.Name, imp.Grades)
				if err != nil {
					return fmt.Errorf("vessel %s: %w", imp.IMO, err)
				}
				if err := c.Vessels.Save(ctx, v); err != nil {
					return err
				}
				fmt.Printf("✓ Imported %s (%s)\n", v.Name, v.IMO)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the vessel JSON file (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
