package handlers

import (
	"context"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
	"github.com/rabindrakharel/pmo-core/internal/domain/services"
)

// RegistryHandler handles instance registry operations.
type RegistryHandler struct {
	service *services.RegistryService
}

// NewRegistryHandler creates a new RegistryHandler.
func NewRegistryHandler(service *services.RegistryService) *RegistryHandler {
	return &RegistryHandler{service: service}
}

// HandleRegister registers an instance.
func (h *RegistryHandler) HandleRegister(ctx context.Context, entityType, entityID, displayName, displayCode string) (*entities.InstanceRecord, error) {
	return h.service.Register(ctx, entityType, entityID, displayName, displayCode)
}

// HandleUpdate applies a partial display update. Empty strings leave
// the stored value unchanged.
func (h *RegistryHandler) HandleUpdate(ctx context.Context, entityType, entityID, displayName, displayCode string) (*entities.InstanceRecord, error) {
	update := entities.DisplayUpdate{}
	if displayName != "" {
		update.DisplayName = &displayName
	}
	if displayCode != "" {
		update.DisplayCode = &displayCode
	}
	return h.service.UpdateDisplay(ctx, entityType, entityID, update)
}

// HandleRemove removes a registry record.
func (h *RegistryHandler) HandleRemove(ctx context.Context, entityType, entityID string) error {
	return h.service.Remove(ctx, entityType, entityID)
}

// HandleGet returns a registry record.
func (h *RegistryHandler) HandleGet(ctx context.Context, entityType, entityID string) (*entities.InstanceRecord, error) {
	return h.service.Get(ctx, entityType, entityID)
}

// HandleList lists registry records for a type.
func (h *RegistryHandler) HandleList(ctx context.Context, entityType string, limit, offset int) ([]*entities.InstanceRecord, error) {
	return h.service.ListByType(ctx, entityType, limit, offset)
}
