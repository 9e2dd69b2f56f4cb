package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	recommendationservice "chancery/contexts/awards-program/recommendation-service"
	configadapter "chancery/contexts/awards-program/recommendation-service/adapters/config"
	"chancery/contexts/awards-program/recommendation-service/adapters/memory"
	postgresadapter "chancery/contexts/awards-program/recommendation-service/adapters/postgres"
	"chancery/internal/platform/config"
	"chancery/internal/platform/db"
	"chancery/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	taxonomy, err := configadapter.LoadTaxonomy(cfg.TaxonomyPath)
	if err != nil {
		return nil, err
	}
	views, err := configadapter.LoadViewConfig(cfg.ViewConfigPath)
	if err != nil {
		return nil, err
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	// The portal's permission engine fronts this service; until its client
	// lands the gateway admits every authenticated principal.
	gateway := memory.NewGateway()
	module := recommendationservice.NewModule(recommendationservice.Dependencies{
		Repository:    repo,
		Authorization: gateway,
		Taxonomy:      taxonomy,
		Views:         views,
		Clock:         postgresadapter.SystemClock{},
		IDGenerator:   postgresadapter.UUIDGenerator{},
		Logger:        logger,
	})

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
