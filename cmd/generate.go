package cmd

import (
	"fmt"

	"github.com/Shreyas-077/Diligent-Assessment/internal/exporter"
	"github.com/Shreyas-077/Diligent-Assessment/internal/generator"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic e-commerce data and export it to CSV",
	Long: `
Generate users, products, orders, order items and reviews with consistent
foreign keys and order totals, then write one CSV file per entity.

With a fixed seed the output is reproducible byte for byte.

Examples:
  ecominsight generate
  ecominsight generate --seed 1337`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		color.Cyan("🎲 Generating synthetic data (seed %d)...", cfg.Seed)
		ds, err := generator.Generate(cfg)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}

		if err := exporter.Export(ds, cfg); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		color.Green("✅ Saved %d users, %d products, %d orders, %d order items, %d reviews to %s/",
			len(ds.Users), len(ds.Products), len(ds.Orders), len(ds.OrderItems), len(ds.Reviews), cfg.DataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
