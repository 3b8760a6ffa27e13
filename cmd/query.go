package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Shreyas-077/Diligent-Assessment/internal/queries"
	"github.com/Shreyas-077/Diligent-Assessment/internal/report"
	"github.com/Shreyas-077/Diligent-Assessment/internal/store"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run the aggregate queries and print the results",
	Long: `
Execute the fixed analytical queries against the loaded database:
top users by spending, top products by revenue, and average rating per
product category.

Output defaults to aligned console tables; --format switches to csv, json
or yaml for piping into other tools.

Examples:
  ecominsight query
  ecominsight query --top 3
  ecominsight query --format yaml > results.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		topUsers, _ := cmd.Flags().GetInt("top")
		topProducts, _ := cmd.Flags().GetInt("top-products")
		format, _ := cmd.Flags().GetString("format")

		st, err := store.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database (run 'ecominsight load' first): %w", err)
		}
		defer st.Close()

		ctx := context.Background()
		runner := queries.NewRunner(st.DB())

		results, err := runner.All(ctx, topUsers, topProducts)
		if err != nil {
			return err
		}

		switch strings.ToLower(format) {
		case "", "table":
			color.New(color.FgCyan, color.Bold).Println(strings.Repeat("=", 70))
			color.New(color.FgCyan, color.Bold).Println("EXECUTING SQL QUERIES")
			color.New(color.FgCyan, color.Bold).Println(strings.Repeat("=", 70))
			fmt.Println()
			for _, res := range results {
				report.PrintResult(os.Stdout, res)
			}
		case "csv":
			for _, res := range results {
				if err := report.WriteCSV(os.Stdout, res); err != nil {
					return err
				}
				fmt.Println()
			}
		case "json":
			return report.WriteJSON(os.Stdout, results)
		case "yaml", "yml":
			return report.WriteYAML(os.Stdout, results)
		default:
			return fmt.Errorf("unsupported format %q (expected table, csv, json or yaml)", format)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().Int("top", 5, "Number of users in the spending ranking")
	queryCmd.Flags().Int("top-products", 10, "Number of products in the revenue ranking")
	queryCmd.Flags().String("format", "table", "Output format: table, csv, json or yaml")
}
