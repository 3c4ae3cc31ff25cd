// Package mocks provides in-memory fakes for the domain ports.
package mocks

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
)

// Store is an in-memory implementation of ports.Store. Setting Err
// makes every operation fail with it.
type Store struct {
	Types     map[string]*entities.EntityType
	Instances map[string]*entities.InstanceRecord
	Edges     map[string]*entities.Edge
	Grants    map[string]*entities.Grant
	Audit     []entities.AuditEntry
	Err       error

	// PurgeErr fails only PurgeInstance, for partial-failure tests.
	PurgeErr error

	nextID int
}

// NewStore creates a new empty mock Store.
func NewStore() *Store {
	return &Store{
		Types:     make(map[string]*entities.EntityType),
		Instances: make(map[string]*entities.InstanceRecord),
		Edges:     make(map[string]*entities.Edge),
		Grants:    make(map[string]*entities.Grant),
	}
}

func instanceKey(entityType, entityID string) string {
	return entityType + "/" + entityID
}

func grantKey(subjectID, entityType, entityID string) string {
	return subjectID + "|" + entityType + "|" + entityID
}

func (m *Store) newID() string {
	m.nextID++
	return fmt.Sprintf("id-%d", m.nextID)
}

// EnsureSchema is a no-op.
func (m *Store) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close is a no-op.
func (m *Store) Close() error {
	return nil
}

// Entity type methods.

// SaveEntityType inserts or updates an entity type.
func (m *Store) SaveEntityType(_ context.Context, et *entities.EntityType) error {
	if m.Err != nil {
		return m.Err
	}
	etCopy := *et
	m.Types[et.Code] = &etCopy
	return nil
}

// FindEntityType finds an entity type by code.
func (m *Store) FindEntityType(_ context.Context, code string) (*entities.EntityType, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Types[code], nil
}

// ListEntityTypes lists all entity types ordered by code.
func (m *Store) ListEntityTypes(_ context.Context) ([]entities.EntityType, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.EntityType, 0, len(m.Types))
	for _, et := range m.Types {
		result = append(result, *et)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

// Instance registry methods.

// UpsertInstance inserts or updates a registry record.
func (m *Store) UpsertInstance(_ context.Context, rec *entities.InstanceRecord) error {
	if m.Err != nil {
		return m.Err
	}
	key := instanceKey(rec.EntityType, rec.EntityID)
	recCopy := *rec
	recCopy.Active = true
	recCopy.UpdatedAt = time.Now()
	if existing, ok := m.Instances[key]; ok {
		recCopy.CreatedAt = existing.CreatedAt
	} else {
		recCopy.CreatedAt = recCopy.UpdatedAt
	}
	m.Instances[key] = &recCopy
	return nil
}

// FindInstance finds a registry record by key.
func (m *Store) FindInstance(_ context.Context, entityType, entityID string) (*entities.InstanceRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Instances[instanceKey(entityType, entityID)], nil
}

// ListInstancesByType lists registry records for a type.
func (m *Store) ListInstancesByType(_ context.Context, entityType string, limit, offset int) ([]*entities.InstanceRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []*entities.InstanceRecord
	for _, rec := range m.Instances {
		if rec.EntityType == entityType {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DisplayName < result[j].DisplayName })
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

// DeleteInstance removes a registry record.
func (m *Store) DeleteInstance(_ context.Context, entityType, entityID string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Instances, instanceKey(entityType, entityID))
	return nil
}

// Relationship graph methods.

// FindEdgeByTuple finds an edge by endpoint tuple, active or not.
func (m *Store) FindEdgeByTuple(_ context.Context, parentType, parentID, childType, childID string) (*entities.Edge, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, edge := range m.Edges {
		if edge.ParentType == parentType && edge.ParentID == parentID &&
			edge.ChildType == childType && edge.ChildID == childID {
			return edge, nil
		}
	}
	return nil, nil
}

// FindEdgeByID finds an edge by id.
func (m *Store) FindEdgeByID(_ context.Context, id string) (*entities.Edge, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Edges[id], nil
}

// SaveEdge inserts an edge or reactivates the row for its tuple.
func (m *Store) SaveEdge(_ context.Context, edge *entities.Edge) error {
	if m.Err != nil {
		return m.Err
	}
	existing, _ := m.FindEdgeByTuple(context.Background(), edge.ParentType, edge.ParentID, edge.ChildType, edge.ChildID)
	if existing != nil {
		existing.Active = true
		existing.Label = edge.Label
		return nil
	}
	edgeCopy := *edge
	if edgeCopy.ID == "" {
		edgeCopy.ID = m.newID()
	}
	edgeCopy.Active = true
	edgeCopy.CreatedAt = time.Now()
	m.Edges[edgeCopy.ID] = &edgeCopy
	return nil
}

// FindEdges returns active edges matching the filter.
func (m *Store) FindEdges(_ context.Context, filter entities.EdgeFilter) ([]entities.Edge, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.Edge
	for _, edge := range m.Edges {
		if !edge.Active {
			continue
		}
		if filter.ParentType != "" && edge.ParentType != filter.ParentType {
			continue
		}
		if filter.ParentID != "" && edge.ParentID != filter.ParentID {
			continue
		}
		if filter.ChildType != "" && edge.ChildType != filter.ChildType {
			continue
		}
		if filter.ChildID != "" && edge.ChildID != filter.ChildID {
			continue
		}
		result = append(result, *edge)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// DeleteEdge removes an edge by id.
func (m *Store) DeleteEdge(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Edges, id)
	return nil
}

// Permission grant methods.

// FindGrant finds a stored grant by exact key.
func (m *Store) FindGrant(_ context.Context, subjectID, entityType, entityID string) (*entities.Grant, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Grants[grantKey(subjectID, entityType, entityID)], nil
}

// UpsertGrantMax inserts a grant or raises the stored level.
func (m *Store) UpsertGrantMax(_ context.Context, grant *entities.Grant) error {
	if m.Err != nil {
		return m.Err
	}
	key := grantKey(grant.SubjectID, grant.EntityType, grant.EntityID)
	if existing, ok := m.Grants[key]; ok {
		existing.Level = entities.MaxLevel(existing.Level, grant.Level)
		existing.UpdatedAt = time.Now()
		return nil
	}
	grantCopy := *grant
	if grantCopy.ID == "" {
		grantCopy.ID = m.newID()
	}
	grantCopy.Via = entities.ViaDirect
	grantCopy.CreatedAt = time.Now()
	grantCopy.UpdatedAt = grantCopy.CreatedAt
	m.Grants[key] = &grantCopy
	return nil
}

// DeleteGrants removes every grant for the exact key.
func (m *Store) DeleteGrants(_ context.Context, subjectID, entityType, entityID string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Grants, grantKey(subjectID, entityType, entityID))
	return nil
}

// FindGrantsForSubjects returns grants held by the subjects for one type.
func (m *Store) FindGrantsForSubjects(_ context.Context, subjectIDs []string, entityType string) ([]entities.Grant, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.grantsMatching(subjectIDs, entityType), nil
}

// FindAllGrantsForSubjects returns grants held by the subjects across
// every type.
func (m *Store) FindAllGrantsForSubjects(_ context.Context, subjectIDs []string) ([]entities.Grant, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.grantsMatching(subjectIDs, ""), nil
}

func (m *Store) grantsMatching(subjectIDs []string, entityType string) []entities.Grant {
	subjects := make(map[string]struct{}, len(subjectIDs))
	for _, id := range subjectIDs {
		subjects[id] = struct{}{}
	}
	var result []entities.Grant
	for _, grant := range m.Grants {
		if _, ok := subjects[grant.SubjectID]; !ok {
			continue
		}
		if entityType != "" && grant.EntityType != entityType {
			continue
		}
		result = append(result, *grant)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Orchestration methods.

// PurgeInstance removes the registry record, touching edges and
// (optionally) scoped grants.
func (m *Store) PurgeInstance(_ context.Context, entityType, entityID string, removeGrants bool) (*entities.PurgeCounts, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.PurgeErr != nil {
		return nil, m.PurgeErr
	}

	counts := &entities.PurgeCounts{}
	key := instanceKey(entityType, entityID)
	if _, ok := m.Instances[key]; ok {
		delete(m.Instances, key)
		counts.Deregistered = 1
	}
	for id, edge := range m.Edges {
		parentMatch := edge.ParentType == entityType && edge.ParentID == entityID
		childMatch := edge.ChildType == entityType && edge.ChildID == entityID
		if parentMatch || childMatch {
			delete(m.Edges, id)
			counts.EdgesRemoved++
		}
	}
	if removeGrants {
		for key, grant := range m.Grants {
			if grant.EntityType == entityType && grant.EntityID == entityID {
				delete(m.Grants, key)
				counts.GrantsRevoked++
			}
		}
	}
	return counts, nil
}

// Audit log methods.

// LogAction appends an audit entry.
func (m *Store) LogAction(_ context.Context, action, entityType, entityID string, details map[string]any) error {
	if m.Err != nil {
		return m.Err
	}
	m.Audit = append(m.Audit, entities.AuditEntry{
		ID:         int64(len(m.Audit) + 1),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  time.Now(),
	})
	return nil
}

// FindAuditLog returns audit entries for one instance, newest first.
func (m *Store) FindAuditLog(_ context.Context, entityType, entityID string) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.AuditEntry
	for i := len(m.Audit) - 1; i >= 0; i-- {
		if m.Audit[i].EntityType == entityType && m.Audit[i].EntityID == entityID {
			result = append(result, m.Audit[i])
		}
	}
	return result, nil
}
