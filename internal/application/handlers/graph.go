package handlers

import (
	"context"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
	"github.com/rabindrakharel/pmo-core/internal/domain/services"
)

// GraphHandler handles relationship graph operations.
type GraphHandler struct {
	service *services.GraphService
}

// NewGraphHandler creates a new GraphHandler.
func NewGraphHandler(service *services.GraphService) *GraphHandler {
	return &GraphHandler{service: service}
}

// HandleLink links a child under a parent.
func (h *GraphHandler) HandleLink(ctx context.Context, parentType, parentID, childType, childID, label string) (*entities.Edge, error) {
	return h.service.Link(ctx, parentType, parentID, childType, childID, label)
}

// HandleUnlink removes an edge by id.
func (h *GraphHandler) HandleUnlink(ctx context.Context, edgeID string) error {
	return h.service.Unlink(ctx, edgeID)
}

// HandleChildren returns child ids of a parent for one child type.
func (h *GraphHandler) HandleChildren(ctx context.Context, parentType, parentID, childType string) ([]string, error) {
	return h.service.ChildrenOf(ctx, parentType, parentID, childType)
}

// HandleParents returns parent endpoints of a child.
func (h *GraphHandler) HandleParents(ctx context.Context, childType, childID string) ([]entities.ParentRef, error) {
	return h.service.ParentsOf(ctx, childType, childID)
}

// HandleEdges returns active edges matching the filter.
func (h *GraphHandler) HandleEdges(ctx context.Context, filter entities.EdgeFilter) ([]entities.Edge, error) {
	return h.service.Edges(ctx, filter)
}
