package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Seed     int64    `json:"seed" mapstructure:"seed"`
	DataDir  string   `json:"data_dir" mapstructure:"data_dir"`
	Database Database `json:"database" mapstructure:"database"`
	Counts   Counts   `json:"counts" mapstructure:"counts"`
	Prices   Prices   `json:"prices" mapstructure:"prices"`
}

type Database struct {
	Path string `json:"path" mapstructure:"path"`
}

type Counts struct {
	Users        int `json:"users" mapstructure:"users"`
	Products     int `json:"products" mapstructure:"products"`
	Orders       int `json:"orders" mapstructure:"orders"`
	Reviews      int `json:"reviews" mapstructure:"reviews"`
	ItemsMin     int `json:"items_min" mapstructure:"items_min"`
	ItemsMax     int `json:"items_max" mapstructure:"items_max"`
	QuantityMax  int `json:"quantity_max" mapstructure:"quantity_max"`
	SignupWindow int `json:"signup_window_days" mapstructure:"signup_window_days"`
}

type Prices struct {
	Min float64 `json:"min" mapstructure:"min"`
	Max float64 `json:"max" mapstructure:"max"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set defaults
	if !viper.IsSet("seed") {
		cfg.Seed = 42
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "ecommerce.db"
	}
	if cfg.Counts.Users == 0 && !viper.IsSet("counts.users") {
		cfg.Counts.Users = 100
	}
	if cfg.Counts.Products == 0 && !viper.IsSet("counts.products") {
		cfg.Counts.Products = 50
	}
	if cfg.Counts.Orders == 0 && !viper.IsSet("counts.orders") {
		cfg.Counts.Orders = 200
	}
	if cfg.Counts.Reviews == 0 && !viper.IsSet("counts.reviews") {
		cfg.Counts.Reviews = 150
	}
	if cfg.Counts.ItemsMin == 0 {
		cfg.Counts.ItemsMin = 1
	}
	if cfg.Counts.ItemsMax == 0 {
		cfg.Counts.ItemsMax = 5
	}
	if cfg.Counts.QuantityMax == 0 {
		cfg.Counts.QuantityMax = 5
	}
	if cfg.Counts.SignupWindow == 0 {
		cfg.Counts.SignupWindow = 730
	}
	if cfg.Prices.Min == 0 {
		cfg.Prices.Min = 10.0
	}
	if cfg.Prices.Max == 0 {
		cfg.Prices.Max = 500.0
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Counts.Users <= 0 {
		return fmt.Errorf("counts.users must be positive, got %d", c.Counts.Users)
	}
	if c.Counts.Products <= 0 {
		return fmt.Errorf("counts.products must be positive, got %d", c.Counts.Products)
	}
	if c.Counts.Orders < 0 {
		return fmt.Errorf("counts.orders cannot be negative, got %d", c.Counts.Orders)
	}
	if c.Counts.Reviews < 0 {
		return fmt.Errorf("counts.reviews cannot be negative, got %d", c.Counts.Reviews)
	}
	if c.Counts.ItemsMin < 1 {
		return fmt.Errorf("counts.items_min must be at least 1, got %d", c.Counts.ItemsMin)
	}
	if c.Counts.ItemsMax < c.Counts.ItemsMin {
		return fmt.Errorf("counts.items_max (%d) cannot be less than counts.items_min (%d)",
			c.Counts.ItemsMax, c.Counts.ItemsMin)
	}
	if c.Counts.QuantityMax < 1 {
		return fmt.Errorf("counts.quantity_max must be at least 1, got %d", c.Counts.QuantityMax)
	}
	if c.Counts.SignupWindow < 1 {
		return fmt.Errorf("counts.signup_window_days must be at least 1, got %d", c.Counts.SignupWindow)
	}
	if c.Prices.Min <= 0 || c.Prices.Max < c.Prices.Min {
		return fmt.Errorf("invalid price range [%.2f, %.2f]", c.Prices.Min, c.Prices.Max)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path cannot be empty")
	}
	return nil
}

// CSVPath returns the export path for a table's CSV file.
func (c *Config) CSVPath(table string) string {
	return filepath.Join(c.DataDir, table+".csv")
}
