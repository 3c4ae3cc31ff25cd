package ports

import (
	"context"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
)

// Store defines the persistence interface for the engine: entity type
// catalog, instance registry, relationship graph, permission grants
// and the audit log. A single interface because every implementation
// backs all four tables with one database and the orchestrator needs
// cross-table transactions (PurgeInstance).
type Store interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// Entity type operations

	// SaveEntityType inserts or updates an entity type by code.
	SaveEntityType(ctx context.Context, et *entities.EntityType) error

	// FindEntityType finds an entity type by code. Returns nil if absent.
	FindEntityType(ctx context.Context, code string) (*entities.EntityType, error)

	// ListEntityTypes lists all entity types, active or not, ordered by code.
	ListEntityTypes(ctx context.Context) ([]entities.EntityType, error)

	// Instance registry operations

	// UpsertInstance inserts or updates a registry record by
	// (entity_type, entity_id). Idempotent; last write wins for the
	// display fields.
	UpsertInstance(ctx context.Context, rec *entities.InstanceRecord) error

	// FindInstance finds a registry record. Returns nil if absent.
	FindInstance(ctx context.Context, entityType, entityID string) (*entities.InstanceRecord, error)

	// ListInstancesByType lists registry records for a type with pagination.
	ListInstancesByType(ctx context.Context, entityType string, limit, offset int) ([]*entities.InstanceRecord, error)

	// DeleteInstance removes a registry record. Deleting a missing
	// record is not an error.
	DeleteInstance(ctx context.Context, entityType, entityID string) error

	// Relationship graph operations

	// FindEdgeByTuple finds the edge for an exact endpoint tuple,
	// active or inactive. Returns nil if absent.
	FindEdgeByTuple(ctx context.Context, parentType, parentID, childType, childID string) (*entities.Edge, error)

	// FindEdgeByID finds an edge by row id. Returns nil if absent.
	FindEdgeByID(ctx context.Context, id string) (*entities.Edge, error)

	// SaveEdge inserts an edge, or reactivates/relabels the existing
	// row when the endpoint tuple already exists. The surviving row
	// keeps its original id.
	SaveEdge(ctx context.Context, edge *entities.Edge) error

	// FindEdges returns active edges matching the filter.
	FindEdges(ctx context.Context, filter entities.EdgeFilter) ([]entities.Edge, error)

	// DeleteEdge removes an edge by id. Deleting a missing edge is not
	// an error.
	DeleteEdge(ctx context.Context, id string) error

	// Permission grant operations

	// FindGrant finds the stored grant for an exact key. Returns nil
	// if absent.
	FindGrant(ctx context.Context, subjectID, entityType, entityID string) (*entities.Grant, error)

	// UpsertGrantMax inserts a grant, or raises the stored level to
	// the given one when a row already exists. Never lowers a level.
	UpsertGrantMax(ctx context.Context, grant *entities.Grant) error

	// DeleteGrants removes every grant for the exact
	// (subject, entity_type, entity_id) key.
	DeleteGrants(ctx context.Context, subjectID, entityType, entityID string) error

	// FindGrantsForSubjects returns all grants held by any of the
	// subjects for one entity type (instance-scoped and type-level).
	FindGrantsForSubjects(ctx context.Context, subjectIDs []string, entityType string) ([]entities.Grant, error)

	// FindAllGrantsForSubjects returns all grants held by any of the
	// subjects across every entity type.
	FindAllGrantsForSubjects(ctx context.Context, subjectIDs []string) ([]entities.Grant, error)

	// Orchestration

	// PurgeInstance removes the registry record, every edge touching
	// the instance as parent or child, and (optionally) every grant
	// scoped to it, in a single transaction.
	PurgeInstance(ctx context.Context, entityType, entityID string, removeGrants bool) (*entities.PurgeCounts, error)

	// Audit log

	// LogAction appends an audit entry.
	LogAction(ctx context.Context, action, entityType, entityID string, details map[string]any) error

	// FindAuditLog returns audit entries for one instance, newest first.
	FindAuditLog(ctx context.Context, entityType, entityID string) ([]entities.AuditEntry, error)
}
