package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
	"github.com/rabindrakharel/pmo-core/internal/domain/mocks"
)

// testEngine wires every service over one shared mock store, seeded
// with the default entity types.
type testEngine struct {
	store       *mocks.Store
	catalog     *CatalogService
	registry    *RegistryService
	graph       *GraphService
	permissions *PermissionService
	lifecycle   *LifecycleService
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()
	store := mocks.NewStore()
	catalog := NewCatalogService(store, time.Hour)
	require.NoError(t, catalog.Seed(context.Background()))

	registry := NewRegistryService(store, catalog)
	graph := NewGraphService(store, registry, catalog)
	permissions := NewPermissionService(store, graph)
	lifecycle := NewLifecycleService(store, catalog, registry, graph, permissions)

	return &testEngine{
		store:       store,
		catalog:     catalog,
		registry:    registry,
		graph:       graph,
		permissions: permissions,
		lifecycle:   lifecycle,
	}
}

func (e *testEngine) register(t *testing.T, entityType, entityID, name string) {
	t.Helper()
	_, err := e.registry.Register(context.Background(), entityType, entityID, name, "")
	require.NoError(t, err)
}

func (e *testEngine) link(t *testing.T, parentType, parentID, childType, childID string) *entities.Edge {
	t.Helper()
	edge, err := e.graph.Link(context.Background(), parentType, parentID, childType, childID, "")
	require.NoError(t, err)
	return edge
}

func (e *testEngine) grant(t *testing.T, subjectID, entityType, entityID string, level entities.Level) {
	t.Helper()
	_, err := e.permissions.Grant(context.Background(), subjectID, entityType, entityID, level)
	require.NoError(t, err)
}
