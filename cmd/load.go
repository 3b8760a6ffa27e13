package cmd

import (
	"context"
	"fmt"

	"github.com/Shreyas-077/Diligent-Assessment/internal/loader"
	"github.com/Shreyas-077/Diligent-Assessment/internal/store"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the exported CSV files into SQLite",
	Long: `
Recreate the database schema and bulk-insert the five exported CSV files in
dependency order. Any existing database file is fully replaced. A failing
table is reported without hiding tables that loaded fine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		color.Cyan("📦 Loading CSV files into %s...", cfg.Database.Path)

		report, err := loader.Load(ctx, cfg)
		if report != nil {
			printLoadReport(report)
		}
		if err != nil {
			return err
		}
		if err := report.Err(); err != nil {
			return fmt.Errorf("load finished with errors: %w", err)
		}

		st, err := store.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := loader.VerifyIntegrity(ctx, st); err != nil {
			return fmt.Errorf("integrity check failed: %w", err)
		}

		color.Green("✅ Database loading complete: %s", cfg.Database.Path)
		return nil
	},
}

func printLoadReport(report *loader.Report) {
	for _, t := range report.Tables {
		if t.Err != nil {
			color.Red("❌ %s: %v", t.Table, t.Err)
		} else {
			color.Green("✓ Loaded %d records into %s", t.Rows, t.Table)
		}
	}
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
