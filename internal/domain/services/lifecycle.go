package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
	"github.com/rabindrakharel/pmo-core/internal/domain/ports"
)

// PrimaryDisposer disposes the primary business record for an
// instance. Supplied by the caller at deletion time; it alone decides
// hard vs. soft deletion of the primary table.
type PrimaryDisposer func(ctx context.Context, entityType, entityID string) error

// DeleteOptions configures an orchestrated delete.
type DeleteOptions struct {
	// CascadeChildren recursively deletes linked children first,
	// depth-first, running the full state machine for each.
	CascadeChildren bool
	// RemoveGrants also removes permission grants scoped to each
	// deleted instance.
	RemoveGrants bool
	// SkipAuthorizationCheck bypasses the DELETE permission check.
	// For trusted internal callers only.
	SkipAuthorizationCheck bool
	// DisposePrimary, when set, is invoked for every deleted instance
	// after its registry/graph/grant rows are purged.
	DisposePrimary PrimaryDisposer
}

// BootstrapOptions configures the creation bootstrap.
type BootstrapOptions struct {
	// Parent, when set, links the new instance under this parent.
	Parent *entities.ParentRef
	// RelationshipLabel labels the parent edge (default "contains").
	RelationshipLabel string
	// OwnerSubjectID, when set, receives an OWNER grant on the new
	// instance.
	OwnerSubjectID string
}

// LifecycleService orchestrates multi-store mutations: the creation
// bootstrap and the cascading delete. It is the only component that
// writes across registry, graph and permission store in one operation.
//
// Within one delete the steps run strictly in order: authorize,
// cascade, purge (deregister + unlink + revoke in one store
// transaction), then the primary-record callback. The authorization
// check and the later mutations are deliberately not serialized behind
// a lock; a permission revoked between check and purge can slip
// through. Accepted: permission changes are rare and the alternative
// is locking every mutation.
type LifecycleService struct {
	store       ports.Store
	catalog     *CatalogService
	registry    *RegistryService
	graph       *GraphService
	permissions *PermissionService
}

// NewLifecycleService creates a new LifecycleService.
func NewLifecycleService(
	store ports.Store,
	catalog *CatalogService,
	registry *RegistryService,
	graph *GraphService,
	permissions *PermissionService,
) *LifecycleService {
	return &LifecycleService{
		store:       store,
		catalog:     catalog,
		registry:    registry,
		graph:       graph,
		permissions: permissions,
	}
}

// Bootstrap registers a freshly created business record, optionally
// links it under a parent, and optionally grants OWNER to its creator.
func (s *LifecycleService) Bootstrap(ctx context.Context, entityType, entityID, displayName, displayCode string, opts BootstrapOptions) (*entities.InstanceRecord, error) {
	rec, err := s.registry.Register(ctx, entityType, entityID, displayName, displayCode)
	if err != nil {
		return nil, err
	}

	if opts.Parent != nil {
		if _, err := s.graph.Link(ctx, opts.Parent.ParentType, opts.Parent.ParentID, entityType, entityID, opts.RelationshipLabel); err != nil {
			return nil, fmt.Errorf("linking to parent: %w", err)
		}
	}

	if opts.OwnerSubjectID != "" {
		if _, err := s.permissions.GrantOwner(ctx, opts.OwnerSubjectID, entityType, entityID); err != nil {
			return nil, fmt.Errorf("granting owner: %w", err)
		}
	}

	// Best effort; the bootstrap itself has committed.
	_ = s.store.LogAction(ctx, "lifecycle.bootstrap", entityType, entityID, map[string]any{
		"owner": opts.OwnerSubjectID,
	})
	return rec, nil
}

// Delete runs the orchestrated deletion of one instance.
//
// Failure at any step after the root authorization is returned as a
// *entities.PartialDeleteError carrying the aggregate result of
// everything that did complete; committed steps are never rolled back.
func (s *LifecycleService) Delete(ctx context.Context, subjectID, entityType, entityID string, opts DeleteOptions) (*entities.DeleteResult, error) {
	result := &entities.DeleteResult{EntityType: entityType, EntityID: entityID}

	if !opts.SkipAuthorizationCheck {
		ok, err := s.permissions.Check(ctx, subjectID, entityType, entityID, entities.LevelDelete)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("subject %q may not delete %s/%s: %w",
				subjectID, entityType, entityID, entities.ErrAuthorizationDenied)
		}
	}

	visited := make(map[string]bool)
	if err := s.deleteTree(ctx, subjectID, entityType, entityID, opts, visited, result, true); err != nil {
		return result, err
	}

	// Best effort; the deletion has committed.
	_ = s.store.LogAction(ctx, "lifecycle.delete", entityType, entityID, map[string]any{
		"deregistered":   result.Deregistered,
		"edges_removed":  result.EdgesRemoved,
		"grants_revoked": result.GrantsRevoked,
		"cascade":        result.CascadeDeleted,
	})
	return result, nil
}

// deleteTree runs steps 2-6 for one node, recursing into children
// first when cascading. The root's authorization has already happened;
// each cascaded child is re-authorized by its own recursive call.
func (s *LifecycleService) deleteTree(ctx context.Context, subjectID, entityType, entityID string, opts DeleteOptions, visited map[string]bool, result *entities.DeleteResult, isRoot bool) error {
	key := entityType + "/" + entityID
	if visited[key] {
		// The graph is acyclic by convention, not constraint. Fail
		// safe instead of recursing forever.
		return &entities.PartialDeleteError{
			Step:   "cascade",
			Result: result,
			Err:    fmt.Errorf("relationship cycle detected at %s", key),
		}
	}
	visited[key] = true

	if opts.CascadeChildren {
		if err := s.cascadeChildren(ctx, subjectID, entityType, entityID, opts, visited, result); err != nil {
			return err
		}
	}

	counts, err := s.store.PurgeInstance(ctx, entityType, entityID, opts.RemoveGrants)
	if err != nil {
		return &entities.PartialDeleteError{Step: "purge", Result: result, Err: err}
	}
	result.AddPurge(counts)
	if !isRoot {
		result.CascadeDeleted++
	}

	if opts.DisposePrimary != nil {
		if err := opts.DisposePrimary(ctx, entityType, entityID); err != nil {
			// The purge above has committed; report, don't roll back.
			return &entities.PartialDeleteError{
				Step:   "dispose-primary",
				Result: result,
				Err:    fmt.Errorf("disposing %s: %w", key, err),
			}
		}
		if isRoot {
			result.PrimaryDisposed = true
		}
	}
	return nil
}

// cascadeChildren deletes every linked child, depth-first, for each
// child type the catalog allows under entityType.
func (s *LifecycleService) cascadeChildren(ctx context.Context, subjectID, entityType, entityID string, opts DeleteOptions, visited map[string]bool, result *entities.DeleteResult) error {
	meta, err := s.catalog.Get(ctx, entityType)
	if errors.Is(err, entities.ErrNotFound) {
		// Type no longer cataloged: nothing registered beneath it.
		return nil
	}
	if err != nil {
		return &entities.PartialDeleteError{Step: "cascade", Result: result, Err: err}
	}

	for _, childType := range meta.AllowedChildCodes {
		childIDs, err := s.graph.ChildrenOf(ctx, entityType, entityID, childType)
		if err != nil {
			return &entities.PartialDeleteError{Step: "cascade", Result: result, Err: err}
		}
		for _, childID := range childIDs {
			if !opts.SkipAuthorizationCheck {
				ok, err := s.permissions.Check(ctx, subjectID, childType, childID, entities.LevelDelete)
				if err != nil {
					return &entities.PartialDeleteError{Step: "cascade", Result: result, Err: err}
				}
				if !ok {
					return &entities.PartialDeleteError{
						Step:   "cascade",
						Result: result,
						Err: fmt.Errorf("subject %q may not delete %s/%s: %w",
							subjectID, childType, childID, entities.ErrAuthorizationDenied),
					}
				}
			}
			if err := s.deleteTree(ctx, subjectID, childType, childID, opts, visited, result, false); err != nil {
				return err
			}
		}
	}
	return nil
}
