package handlers

import (
	"context"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
	"github.com/rabindrakharel/pmo-core/internal/domain/services"
)

// LifecycleHandler handles orchestrated creation and deletion.
type LifecycleHandler struct {
	service *services.LifecycleService
}

// NewLifecycleHandler creates a new LifecycleHandler.
func NewLifecycleHandler(service *services.LifecycleService) *LifecycleHandler {
	return &LifecycleHandler{service: service}
}

// HandleBootstrap registers a new instance, optionally under a parent,
// optionally granting OWNER to the creator.
func (h *LifecycleHandler) HandleBootstrap(ctx context.Context, entityType, entityID, displayName, displayCode string, opts services.BootstrapOptions) (*entities.InstanceRecord, error) {
	return h.service.Bootstrap(ctx, entityType, entityID, displayName, displayCode, opts)
}

// HandleDelete runs the orchestrated delete.
func (h *LifecycleHandler) HandleDelete(ctx context.Context, subjectID, entityType, entityID string, opts services.DeleteOptions) (*entities.DeleteResult, error) {
	return h.service.Delete(ctx, subjectID, entityType, entityID, opts)
}
