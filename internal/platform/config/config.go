package config

import (
	"os"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	TaxonomyPath   string
	ViewConfigPath string
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "chancery"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		TaxonomyPath:   strings.TrimSpace(os.Getenv("TAXONOMY_CONFIG_PATH")),
		ViewConfigPath: strings.TrimSpace(os.Getenv("VIEW_CONFIG_PATH")),
	}, nil
}
