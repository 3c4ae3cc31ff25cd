package handlers

import (
	"context"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
	"github.com/rabindrakharel/pmo-core/internal/domain/services"
)

// CatalogHandler handles entity type catalog operations.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// HandleList returns all entity types.
func (h *CatalogHandler) HandleList(ctx context.Context, includeInactive bool) ([]entities.EntityType, error) {
	return h.service.List(ctx, includeInactive)
}

// HandleGet returns one entity type by code.
func (h *CatalogHandler) HandleGet(ctx context.Context, code string) (*entities.EntityType, error) {
	return h.service.Get(ctx, code)
}

// HandleSave creates or updates an entity type.
func (h *CatalogHandler) HandleSave(ctx context.Context, code, label, icon string, allowedChildren []string) error {
	return h.service.Save(ctx, &entities.EntityType{
		Code:              code,
		Label:             label,
		Icon:              icon,
		AllowedChildCodes: allowedChildren,
		Active:            true,
	})
}

// HandleDeactivate marks an entity type inactive.
func (h *CatalogHandler) HandleDeactivate(ctx context.Context, code string) error {
	return h.service.Deactivate(ctx, code)
}

// HandleParents returns the type codes that allow code as a child.
func (h *CatalogHandler) HandleParents(ctx context.Context, code string) ([]string, error) {
	return h.service.ParentTypesOf(ctx, code)
}
