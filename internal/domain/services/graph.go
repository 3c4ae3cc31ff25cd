package services

import (
	"context"
	"fmt"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
	"github.com/rabindrakharel/pmo-core/internal/domain/ports"
)

// GraphService maintains the parent/child relationship graph. Edges
// never imply ownership or cascade by themselves; cascade is a
// decision of the lifecycle orchestrator.
type GraphService struct {
	store    ports.Store
	registry *RegistryService
	catalog  *CatalogService
}

// NewGraphService creates a new GraphService.
func NewGraphService(store ports.Store, registry *RegistryService, catalog *CatalogService) *GraphService {
	return &GraphService{
		store:    store,
		registry: registry,
		catalog:  catalog,
	}
}

// Link creates a directed edge from parent to child. Safe to retry
// and safe to call redundantly: an existing active edge is returned
// unchanged, an inactive edge is reactivated, and only then is a new
// edge inserted. At most one active edge survives per tuple even when
// two calls race.
func (s *GraphService) Link(ctx context.Context, parentType, parentID, childType, childID, label string) (*entities.Edge, error) {
	if label == "" {
		label = entities.DefaultEdgeLabel
	}

	parentMeta, err := s.catalog.Get(ctx, parentType)
	if err != nil {
		return nil, err
	}
	if !parentMeta.AllowsChild(childType) {
		return nil, fmt.Errorf("entity type %q does not allow %q children", parentType, childType)
	}

	if err := s.requireRegistered(ctx, parentType, parentID); err != nil {
		return nil, err
	}
	if err := s.requireRegistered(ctx, childType, childID); err != nil {
		return nil, err
	}

	existing, err := s.store.FindEdgeByTuple(ctx, parentType, parentID, childType, childID)
	if err != nil {
		return nil, fmt.Errorf("finding edge: %w", err)
	}
	if existing != nil && existing.Active {
		return existing, nil
	}

	edge := &entities.Edge{
		ParentType: parentType,
		ParentID:   parentID,
		ChildType:  childType,
		ChildID:    childID,
		Label:      label,
	}
	if existing != nil {
		edge.ID = existing.ID
	}
	if err := s.store.SaveEdge(ctx, edge); err != nil {
		return nil, fmt.Errorf("saving edge: %w", err)
	}

	// Re-read: on a racing insert the conflicting row wins and keeps
	// its original id.
	return s.store.FindEdgeByTuple(ctx, parentType, parentID, childType, childID)
}

// Unlink removes an edge by id. Idempotent.
func (s *GraphService) Unlink(ctx context.Context, edgeID string) error {
	if err := s.store.DeleteEdge(ctx, edgeID); err != nil {
		return fmt.Errorf("unlinking edge: %w", err)
	}
	return nil
}

// ChildrenOf returns the child ids of active edges from the parent to
// children of the given type.
func (s *GraphService) ChildrenOf(ctx context.Context, parentType, parentID, childType string) ([]string, error) {
	edges, err := s.store.FindEdges(ctx, entities.EdgeFilter{
		ParentType: parentType,
		ParentID:   parentID,
		ChildType:  childType,
	})
	if err != nil {
		return nil, fmt.Errorf("querying children: %w", err)
	}

	ids := make([]string, len(edges))
	for i, edge := range edges {
		ids[i] = edge.ChildID
	}
	return ids, nil
}

// ParentsOf returns the parent endpoints of active edges into the
// given child.
func (s *GraphService) ParentsOf(ctx context.Context, childType, childID string) ([]entities.ParentRef, error) {
	edges, err := s.store.FindEdges(ctx, entities.EdgeFilter{
		ChildType: childType,
		ChildID:   childID,
	})
	if err != nil {
		return nil, fmt.Errorf("querying parents: %w", err)
	}

	parents := make([]entities.ParentRef, len(edges))
	for i, edge := range edges {
		parents[i] = entities.ParentRef{ParentType: edge.ParentType, ParentID: edge.ParentID}
	}
	return parents, nil
}

// Edges returns active edges matching the filter.
func (s *GraphService) Edges(ctx context.Context, filter entities.EdgeFilter) ([]entities.Edge, error) {
	return s.store.FindEdges(ctx, filter)
}

func (s *GraphService) requireRegistered(ctx context.Context, entityType, entityID string) error {
	exists, err := s.registry.Exists(ctx, entityType, entityID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("instance %s/%s: %w", entityType, entityID, entities.ErrNotFound)
	}
	return nil
}
