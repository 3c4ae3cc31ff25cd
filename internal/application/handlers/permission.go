package handlers

import (
	"context"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
	"github.com/rabindrakharel/pmo-core/internal/domain/services"
)

// PermissionHandler handles permission grants and checks.
type PermissionHandler struct {
	service *services.PermissionService
}

// NewPermissionHandler creates a new PermissionHandler.
func NewPermissionHandler(service *services.PermissionService) *PermissionHandler {
	return &PermissionHandler{service: service}
}

// HandleGrant parses the level name and stores the grant.
func (h *PermissionHandler) HandleGrant(ctx context.Context, subjectID, entityType, entityID, level string) (*entities.Grant, error) {
	parsed, err := entities.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return h.service.Grant(ctx, subjectID, entityType, entityID, parsed)
}

// HandleRevoke removes all grants for the exact key.
func (h *PermissionHandler) HandleRevoke(ctx context.Context, subjectID, entityType, entityID string) error {
	return h.service.RevokeAll(ctx, subjectID, entityType, entityID)
}

// HandleCheck reports whether the subject reaches the required level.
func (h *PermissionHandler) HandleCheck(ctx context.Context, subjectID, entityType, entityID, level string) (bool, error) {
	parsed, err := entities.ParseLevel(level)
	if err != nil {
		return false, err
	}
	return h.service.Check(ctx, subjectID, entityType, entityID, parsed)
}

// HandleEffective resolves the subject's effective level.
func (h *PermissionHandler) HandleEffective(ctx context.Context, subjectID, entityType, entityID string) (entities.Level, error) {
	return h.service.EffectiveLevel(ctx, subjectID, entityType, entityID)
}

// HandleWhere produces the listing predicate for a subject and type.
func (h *PermissionHandler) HandleWhere(ctx context.Context, subjectID, entityType, level string) (entities.Predicate, error) {
	parsed, err := entities.ParseLevel(level)
	if err != nil {
		return entities.NonePredicate(), err
	}
	return h.service.WhereCondition(ctx, subjectID, entityType, parsed)
}
