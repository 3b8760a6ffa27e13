package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Seed != 42 {
		t.Errorf("Expected default seed 42, got %d", cfg.Seed)
	}
	if cfg.DataDir != "data" {
		t.Errorf("Expected data_dir to be 'data', got '%s'", cfg.DataDir)
	}
	if cfg.Database.Path != "ecommerce.db" {
		t.Errorf("Expected database path to be 'ecommerce.db', got '%s'", cfg.Database.Path)
	}
	if cfg.Counts.Users != 100 {
		t.Errorf("Expected default users count 100, got %d", cfg.Counts.Users)
	}
	if cfg.Counts.Products != 50 {
		t.Errorf("Expected default products count 50, got %d", cfg.Counts.Products)
	}
	if cfg.Counts.Orders != 200 {
		t.Errorf("Expected default orders count 200, got %d", cfg.Counts.Orders)
	}
	if cfg.Counts.Reviews != 150 {
		t.Errorf("Expected default reviews count 150, got %d", cfg.Counts.Reviews)
	}
	if cfg.Counts.ItemsMin != 1 || cfg.Counts.ItemsMax != 5 {
		t.Errorf("Expected default items range [1, 5], got [%d, %d]", cfg.Counts.ItemsMin, cfg.Counts.ItemsMax)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got: %v", err)
	}
}

func TestValidateRejectsBadCounts(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero users", func(c *Config) { c.Counts.Users = 0 }},
		{"negative users", func(c *Config) { c.Counts.Users = -1 }},
		{"zero products", func(c *Config) { c.Counts.Products = 0 }},
		{"negative orders", func(c *Config) { c.Counts.Orders = -5 }},
		{"negative reviews", func(c *Config) { c.Counts.Reviews = -5 }},
		{"zero items min", func(c *Config) { c.Counts.ItemsMin = 0 }},
		{"inverted items range", func(c *Config) { c.Counts.ItemsMin = 4; c.Counts.ItemsMax = 2 }},
		{"zero quantity max", func(c *Config) { c.Counts.QuantityMax = 0 }},
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"empty database path", func(c *Config) { c.Database.Path = "" }},
		{"zero price min", func(c *Config) { c.Prices.Min = 0 }},
		{"inverted price range", func(c *Config) { c.Prices.Min = 100; c.Prices.Max = 50 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Expected validation to fail for %s, but it passed", tc.name)
			}
		})
	}
}

func TestCSVPath(t *testing.T) {
	cfg := validConfig()
	cfg.DataDir = filepath.Join("some", "dir")

	got := cfg.CSVPath("users")
	want := filepath.Join("some", "dir", "users.csv")
	if got != want {
		t.Errorf("Expected CSV path %q, got %q", want, got)
	}
}

func validConfig() *Config {
	return &Config{
		Seed:    42,
		DataDir: "data",
		Database: Database{
			Path: "ecommerce.db",
		},
		Counts: Counts{
			Users:        10,
			Products:     5,
			Orders:       20,
			Reviews:      15,
			ItemsMin:     1,
			ItemsMax:     3,
			QuantityMax:  5,
			SignupWindow: 365,
		},
		Prices: Prices{Min: 10, Max: 500},
	}
}
