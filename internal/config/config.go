// Package config loads the hub configuration from an HCL file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete hub configuration. Blocks are pointers so a
// config file may omit any of them.
type Config struct {
	Collector *CollectorConfig `hcl:"collector,block"`
	Storage   *StorageConfig   `hcl:"storage,block"`
	API       *APIConfig       `hcl:"api,block"`
	LogLevel  string           `hcl:"log_level,optional"`
	LogFile   string           `hcl:"log_file,optional"`
}

// CollectorConfig configures the hand-history collector.
type CollectorConfig struct {
	HandHistoryDir string `hcl:"hand_history_dir,optional"`
	PollSeconds    int    `hcl:"poll_seconds,optional"`
}

// StorageConfig configures the database.
type StorageConfig struct {
	DatabasePath string `hcl:"database_path,optional"`
}

// APIConfig configures the stats HTTP server.
type APIConfig struct {
	Port int `hcl:"port,optional"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Collector: &CollectorConfig{
			HandHistoryDir: "hand-histories",
			PollSeconds:    30,
		},
		Storage: &StorageConfig{
			DatabasePath: "pokerhub.db",
		},
		API: &APIConfig{
			Port: 8090,
		},
		LogLevel: "info",
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; a present but malformed file is an error.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing blocks and values
	if cfg.Collector == nil {
		cfg.Collector = &CollectorConfig{}
	}
	if cfg.Collector.HandHistoryDir == "" {
		cfg.Collector.HandHistoryDir = "hand-histories"
	}
	if cfg.Collector.PollSeconds == 0 {
		cfg.Collector.PollSeconds = 30
	}
	if cfg.Storage == nil {
		cfg.Storage = &StorageConfig{}
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "pokerhub.db"
	}
	if cfg.API == nil {
		cfg.API = &APIConfig{}
	}
	if cfg.API.Port == 0 {
		cfg.API.Port = 8090
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return &cfg, nil
}

// Validate checks the configuration for nonsense values.
func (c *Config) Validate() error {
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("invalid api port: %d", c.API.Port)
	}
	if c.Collector.PollSeconds < 1 {
		return fmt.Errorf("poll_seconds must be positive, got %d", c.Collector.PollSeconds)
	}
	if c.Collector.HandHistoryDir == "" {
		return fmt.Errorf("hand_history_dir must be set")
	}
	if c.Storage.DatabasePath == "" {
		return fmt.Errorf("database_path must be set")
	}
	return nil
}
