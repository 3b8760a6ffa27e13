package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Shreyas-077/Diligent-Assessment/internal/pipeline"
	"github.com/Shreyas-077/Diligent-Assessment/internal/queries"
	"github.com/Shreyas-077/Diligent-Assessment/internal/report"
	"github.com/Shreyas-077/Diligent-Assessment/internal/store"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: generate, export, load and query",
	Long: `
Execute the whole pipeline in one shot: generate synthetic data, export it to
CSV, load it into SQLite, verify referential integrity, and print the query
report. Re-running fully replaces the previous files and database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		color.New(color.FgCyan, color.Bold).Println("🚀 E-Commerce data pipeline")

		summary, err := pipeline.Run(ctx, cfg)
		if summary != nil && summary.Load != nil {
			printLoadReport(summary.Load)
		}
		if err != nil {
			var stageErr *pipeline.StageError
			if errors.As(err, &stageErr) {
				color.Red("❌ Pipeline halted at the %s stage: %v", stageErr.Stage, stageErr.Err)
			}
			return err
		}

		ds := summary.Dataset
		color.Green("✓ Generated %d users, %d products, %d orders, %d order items, %d reviews",
			len(ds.Users), len(ds.Products), len(ds.Orders), len(ds.OrderItems), len(ds.Reviews))

		st, err := store.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		results, err := queries.NewRunner(st.DB()).All(ctx, 5, 10)
		if err != nil {
			return fmt.Errorf("query stage failed: %w", err)
		}

		fmt.Println()
		for _, res := range results {
			report.PrintResult(os.Stdout, res)
		}

		color.Green("✅ Pipeline completed successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
