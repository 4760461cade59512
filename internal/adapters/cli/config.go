package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oceanline/lubeplan-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration after defaults and env overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			fmt.Println("Database:")
			fmt.Printf("  Type:     %s\n", cfg.Database.Type)
			if cfg.Database.URL != "" {
				fmt.Printf("  URL:      %s\n", maskURL(cfg.Database.URL))
			} else if cfg.Database.Type == "sqlite" {
				fmt.Printf("  Path:     %s\n", cfg.Database.Path)
			} else {
				fmt.Printf("  Host:     %s:%d\n", cfg.Database.Host, cfg.Database.Port)
				fmt.Printf("  User:     %s\n", cfg.Database.User)
				fmt.Printf("  Password: %s\n", maskPassword(cfg.Database.Password))
				fmt.Printf("  Name:     %s\n", cfg.Database.Name)
				fmt.Printf("  SSLMode:  %s\n", cfg.Database.SSLMode)
			}

			fmt.Println("\nOptimizer:")
			fmt.Printf("  TargetFillPcts:        %v\n", cfg.Optimizer.TargetFillPcts)
			fmt.Printf("  DiscountPcts:          %v\n", cfg.Optimizer.DiscountPcts)
			fmt.Printf("  TriggerMultipliers:    %v\n", cfg.Optimizer.TriggerMultipliers)
			fmt.Printf("  WindowSizes:           %v\n", cfg.Optimizer.WindowSizes)
			fmt.Printf("  TopN:                  %d\n", cfg.Optimizer.TopN)
			fmt.Printf("  Workers:               %d\n", cfg.Optimizer.Workers)
			fmt.Printf("  SafetyBufferPct:       %.2f\n", cfg.Optimizer.SafetyBufferPct)
			fmt.Printf("  DefaultDeliveryCharge: %.2f\n", cfg.Optimizer.DefaultDeliveryCharge)
			fmt.Printf("  MinOrderMainEngine:    %.0f\n", cfg.Optimizer.MinOrderMainEngine)
			fmt.Printf("  MinOrderAuxEngine:     %.0f\n", cfg.Optimizer.MinOrderAuxEngine)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:  %s\n", cfg.Logging.Level)
			fmt.Printf("  Format: %s\n", cfg.Logging.Format)
			fmt.Printf("  Output: %s\n", cfg.Logging.Output)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled: %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Printf("  Address: %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			}

			return nil
		},
	}
}

func maskPassword(password string) string {
	if password == "" {
		return "(not set)"
	}
	return "********"
}

// maskURL hides the credential portion of a connection URL.
func maskURL(url string) string {
	at := strings.LastIndex(url, "@")
	scheme := strings.Index(url, "://")
	if at == -1 || scheme == -1 || at < scheme {
		return url
	}
	return url[:scheme+3] + "***:***" + url[at:]
}
