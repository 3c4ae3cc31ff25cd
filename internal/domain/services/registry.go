package services

import (
	"context"
	"fmt"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
	"github.com/rabindrakharel/pmo-core/internal/domain/ports"
)

// RegistryService maintains the denormalized instance registry. It is
// the fast path for name resolution and existence checks; the primary
// business tables stay with their owning routes.
type RegistryService struct {
	store   ports.Store
	catalog *CatalogService
}

// NewRegistryService creates a new RegistryService.
func NewRegistryService(store ports.Store, catalog *CatalogService) *RegistryService {
	return &RegistryService{
		store:   store,
		catalog: catalog,
	}
}

// Register inserts or updates the registry record for an instance.
// Idempotent: registering the same key twice converges on one record,
// last write winning for the display fields.
func (s *RegistryService) Register(ctx context.Context, entityType, entityID, displayName, displayCode string) (*entities.InstanceRecord, error) {
	if entityID == entities.AllInstances {
		return nil, fmt.Errorf("entity id %q is reserved: %w", entityID, entities.ErrInvalidScope)
	}
	if !s.catalog.IsValid(ctx, entityType) {
		return nil, fmt.Errorf("entity type %q: %w", entityType, entities.ErrNotFound)
	}
	if displayName == "" {
		return nil, fmt.Errorf("display name is required")
	}

	rec := &entities.InstanceRecord{
		EntityType:  entityType,
		EntityID:    entityID,
		DisplayName: displayName,
		DisplayCode: displayCode,
		Active:      true,
	}
	if err := s.store.UpsertInstance(ctx, rec); err != nil {
		return nil, fmt.Errorf("registering instance: %w", err)
	}
	return s.store.FindInstance(ctx, entityType, entityID)
}

// UpdateDisplay applies a partial update to the display fields.
// An empty update is a no-op; a missing record is ErrNotFound.
func (s *RegistryService) UpdateDisplay(ctx context.Context, entityType, entityID string, update entities.DisplayUpdate) (*entities.InstanceRecord, error) {
	rec, err := s.store.FindInstance(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("finding instance: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("instance %s/%s: %w", entityType, entityID, entities.ErrNotFound)
	}
	if update.Empty() {
		return rec, nil
	}

	if update.DisplayName != nil {
		rec.DisplayName = *update.DisplayName
	}
	if update.DisplayCode != nil {
		rec.DisplayCode = *update.DisplayCode
	}
	if err := s.store.UpsertInstance(ctx, rec); err != nil {
		return nil, fmt.Errorf("updating instance: %w", err)
	}
	return s.store.FindInstance(ctx, entityType, entityID)
}

// Remove deletes the registry record. Idempotent: removing a missing
// record is not an error. Edges and grants are untouched; only the
// lifecycle orchestrator removes those.
func (s *RegistryService) Remove(ctx context.Context, entityType, entityID string) error {
	if err := s.store.DeleteInstance(ctx, entityType, entityID); err != nil {
		return fmt.Errorf("removing instance: %w", err)
	}
	return nil
}

// Exists reports whether the registry holds a record for the key.
func (s *RegistryService) Exists(ctx context.Context, entityType, entityID string) (bool, error) {
	rec, err := s.store.FindInstance(ctx, entityType, entityID)
	if err != nil {
		return false, fmt.Errorf("finding instance: %w", err)
	}
	return rec != nil, nil
}

// Get returns the registry record for the key, or ErrNotFound.
func (s *RegistryService) Get(ctx context.Context, entityType, entityID string) (*entities.InstanceRecord, error) {
	rec, err := s.store.FindInstance(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("finding instance: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("instance %s/%s: %w", entityType, entityID, entities.ErrNotFound)
	}
	return rec, nil
}

// ListByType lists registry records for a type with pagination.
func (s *RegistryService) ListByType(ctx context.Context, entityType string, limit, offset int) ([]*entities.InstanceRecord, error) {
	return s.store.ListInstancesByType(ctx, entityType, limit, offset)
}
