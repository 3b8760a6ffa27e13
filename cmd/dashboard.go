package cmd

import (
	"fmt"

	"github.com/Shreyas-077/Diligent-Assessment/internal/dashboard"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the E-Commerce Insights web dashboard",
	Long: `
Start a local web server with one table per query, summary metrics, CSV
download links, and a button that regenerates all data in place.

Examples:
  ecominsight dashboard
  ecominsight dashboard --port 8080 --browser=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		port, _ := cmd.Flags().GetInt("port")
		browser, _ := cmd.Flags().GetBool("browser")

		server, err := dashboard.NewServer(cfg, port)
		if err != nil {
			return fmt.Errorf("failed to start dashboard: %w", err)
		}
		return server.Start(browser)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().IntP("port", "p", 5555, "Port to run the dashboard on")
	dashboardCmd.Flags().BoolP("browser", "b", true, "Open browser automatically")
}
