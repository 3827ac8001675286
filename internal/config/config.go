package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvAPIURL overrides the configured catalog base URL when set.
const EnvAPIURL = "SALESLENS_API_URL"

// Config represents the top-level saleslens.yaml configuration.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

// InputConfig locates the sales data file.
type InputConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig locates the run artifacts.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// CatalogConfig points at the product metadata API.
type CatalogConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// AnalyticsConfig tunes the aggregate computations.
type AnalyticsConfig struct {
	TopN int `yaml:"top_n"`
	// LowRevenue is the absolute revenue cutoff below which a product is
	// reported as low-performing.
	LowRevenue float64 `yaml:"low_revenue"`
}

// Load reads a saleslens.yaml file from disk. A .env file in the working
// directory is loaded first (if present), and SALESLENS_API_URL overrides
// the configured catalog base URL.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if url := os.Getenv(EnvAPIURL); url != "" {
		cfg.Catalog.BaseURL = url
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default() *Config {
	return &Config{
		Input:  InputConfig{Path: "data/sales_data.txt"},
		Output: OutputConfig{Dir: "out"},
		Catalog: CatalogConfig{
			BaseURL:        "https://dummyjson.com",
			TimeoutSeconds: 10,
		},
		Analytics: AnalyticsConfig{
			TopN:       5,
			LowRevenue: 1000,
		},
	}
}
