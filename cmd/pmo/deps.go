package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rabindrakharel/pmo-core/internal/application/handlers"
	"github.com/rabindrakharel/pmo-core/internal/domain/services"
	"github.com/rabindrakharel/pmo-core/internal/infrastructure/config"
	"github.com/rabindrakharel/pmo-core/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands. Only handlers are
// exposed; services and the repository stay internal.
type Deps struct {
	Config     *config.Config
	Catalog    *handlers.CatalogHandler
	Registry   *handlers.RegistryHandler
	Graph      *handlers.GraphHandler
	Permission *handlers.PermissionHandler
	Lifecycle  *handlers.LifecycleHandler
}

// withDeps loads config and builds dependencies, then calls the
// provided function. It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.SQLite.Path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	store, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	catalog := services.NewCatalogService(store, cfg.Catalog.CacheTTL())
	if err := catalog.Seed(ctx); err != nil {
		return fmt.Errorf("seeding entity types: %w", err)
	}

	registry := services.NewRegistryService(store, catalog)
	graph := services.NewGraphService(store, registry, catalog)
	permissions := services.NewPermissionService(store, graph)
	lifecycle := services.NewLifecycleService(store, catalog, registry, graph, permissions)

	deps := &Deps{
		Config:     cfg,
		Catalog:    handlers.NewCatalogHandler(catalog),
		Registry:   handlers.NewRegistryHandler(registry),
		Graph:      handlers.NewGraphHandler(graph),
		Permission: handlers.NewPermissionHandler(permissions),
		Lifecycle:  handlers.NewLifecycleHandler(lifecycle),
	}

	return fn(deps)
}
