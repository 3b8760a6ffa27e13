package cmd

import (
	"fmt"

	"github.com/Shreyas-077/Diligent-Assessment/internal/config"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.2.0"
)

func showBanner() {
	color.New(color.FgCyan, color.Bold).Println("📊 E-Commerce Insights")
	color.New(color.FgWhite).Println("   Synthetic data pipeline and analytics dashboard")
	fmt.Print("   ")
	color.New(color.FgCyan).Print("Version: ")
	color.New(color.FgYellow).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "ecominsight",
	Short: "Generate, load and analyze synthetic e-commerce data",
	Long: `
ecominsight is a small analytics pipeline. It generates internally consistent
synthetic e-commerce records (users, products, orders, order items, reviews),
exports them to CSV, loads them into a SQLite database, and answers a fixed
set of aggregate queries through a console report or a web dashboard.

Typical usage:
  ecominsight run                 # full pipeline + console report
  ecominsight generate            # just write the CSV files
  ecominsight load                # just load CSVs into SQLite
  ecominsight query --top 5       # just run the queries
  ecominsight dashboard           # web dashboard with regenerate button`,
	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("ecominsight version %s\n", Version)
			return
		}
		showBanner()
		fmt.Println()
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ecominsight.config.json)")
	rootCmd.PersistentFlags().Int64("seed", 0, "random seed override")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("ecominsight.config")
	}

	viper.AutomaticEnv()
	viper.ReadInConfig()
}

// loadConfig loads the viper config and applies CLI flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetInt64("seed")
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
