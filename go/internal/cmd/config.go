package main

import (
	"fmt"
	"os"

	"github.com/draftday/warroom/go/internal/draft/engine"
	"gopkg.in/yaml.v3"
)

// Config is the server's YAML configuration. Everything has a default so a
// bare binary with a catalog file comes up drafting.
type Config struct {
	CatalogPath string        `yaml:"catalog_path"`
	Engine      engine.Config `yaml:"engine"`
}

func defaultConfig() *Config {
	return &Config{
		CatalogPath: "players.json",
		Engine:      engine.DefaultConfig(),
	}
}

func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
