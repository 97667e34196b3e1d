package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"company-analyzer/internal/analysis"
	"company-analyzer/internal/analysis/analysisobs"
	"company-analyzer/internal/api"
	"company-analyzer/internal/dataset"
	"company-analyzer/internal/logger"
	"company-analyzer/internal/server"
	"company-analyzer/internal/store"
)

// initializeSystem loads .env and initializes the logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// buildDeps wires the dataset store, analysis service and index client
func buildDeps(ctx context.Context, cfg *store.Config) (server.Deps, *dataset.Store, error) {
	source, err := dataset.NewSource(cfg)
	if err != nil {
		return server.Deps{}, nil, fmt.Errorf("failed to create database source: %w", err)
	}
	st := dataset.NewStore(source, cfg.Dataset.CacheTTL)

	indexClient := api.NewClient(
		api.WithTimeout(cfg.HTTP.Timeout),
		api.WithLogging(cfg.HTTP.LogRequests),
	)

	logger.Info(ctx, "Services initialized",
		"source", source.Describe(),
		"cache_ttl", cfg.Dataset.CacheTTL.String(),
		"fuzzy_limit", cfg.Search.FuzzyLimit,
		"index_configured", cfg.Search.CompanyIndexURL != "")

	return server.Deps{
		Analyzer: analysisobs.Wrap(analysis.NewService(st, cfg.Search.FuzzyLimit)),
		Repo:     st,
		Cache:    st,
		Index:    dataset.NewIndexClient(cfg.Search.CompanyIndexURL, indexClient),
	}, st, nil
}
