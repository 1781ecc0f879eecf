package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Database struct {
	Type             string `yaml:"type"`
	ConnectionString string `yaml:"connectionString"`
}

type Cache struct {
	Enabled    bool   `yaml:"enabled"`
	Address    string `yaml:"address"`
	TTLSeconds int    `yaml:"ttlSeconds"`
}

type Storage struct {
	RepositoriesFile string `yaml:"repositoriesFile"`
	ResultsDir       string `yaml:"resultsDir"`
}

type ServiceConfig struct {
	Port     int      `yaml:"port"`
	Storage  Storage  `yaml:"storage"`
	Database Database `yaml:"database"`
	Cache    Cache    `yaml:"cache"`
}

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*ServiceConfig, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// Parse YAML
	var config ServiceConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func applyDefaults(config *ServiceConfig) {
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.Storage.RepositoriesFile == "" {
		config.Storage.RepositoriesFile = "repositories.jsonl"
	}
	if config.Storage.ResultsDir == "" {
		config.Storage.ResultsDir = "results"
	}
}

// validateConfig ensures the configuration has usable values. The database
// and cache sections are optional; when present they must be complete.
func validateConfig(config *ServiceConfig) error {
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port out of range: %d", config.Port)
	}
	if config.Database.Type != "" && config.Database.ConnectionString == "" {
		return fmt.Errorf("database type %s configured without a connection string", config.Database.Type)
	}
	if config.Cache.Enabled && config.Cache.Address == "" {
		return fmt.Errorf("cache enabled without an address")
	}
	return nil
}
