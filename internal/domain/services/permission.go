package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
	"github.com/rabindrakharel/pmo-core/internal/domain/ports"
)

// PermissionService stores permission grants and resolves the
// effective level of a subject against an entity instance.
//
// The effective level is the maximum across four independent sources:
// a direct grant, a grant imported from a role the subject is linked
// under, VIEW inherited from any parent the subject can at least view,
// and a fixed floor inherited from any parent the subject holds CREATE
// on. Inheritance walks exactly one hop; it never recurses through
// grandparents, and it does not chain through roles.
type PermissionService struct {
	store ports.Store
	graph *GraphService
}

// NewPermissionService creates a new PermissionService.
func NewPermissionService(store ports.Store, graph *GraphService) *PermissionService {
	return &PermissionService{
		store: store,
		graph: graph,
	}
}

// Grant stores a permission grant, raising the stored level when a
// grant for the same key already exists. Never a downgrade. CREATE
// grants are only valid at type-level scope (the AllInstances id).
func (s *PermissionService) Grant(ctx context.Context, subjectID, entityType, entityID string, level entities.Level) (*entities.Grant, error) {
	if !level.Valid() {
		return nil, fmt.Errorf("level %v is not grantable", level)
	}
	if level == entities.LevelCreate && entityID != entities.AllInstances {
		return nil, fmt.Errorf("create grants apply to all instances of a type, not %s/%s: %w",
			entityType, entityID, entities.ErrInvalidScope)
	}

	grant := &entities.Grant{
		SubjectID:  subjectID,
		EntityType: entityType,
		EntityID:   entityID,
		Level:      level,
		Via:        entities.ViaDirect,
	}
	if err := s.store.UpsertGrantMax(ctx, grant); err != nil {
		return nil, fmt.Errorf("storing grant: %w", err)
	}
	return s.store.FindGrant(ctx, subjectID, entityType, entityID)
}

// GrantOwner grants OWNER on an instance.
func (s *PermissionService) GrantOwner(ctx context.Context, subjectID, entityType, entityID string) (*entities.Grant, error) {
	return s.Grant(ctx, subjectID, entityType, entityID, entities.LevelOwner)
}

// RevokeAll removes every stored grant for the exact key. Derived
// results (role imports, inheritance) are computed at resolution time
// and are unaffected.
func (s *PermissionService) RevokeAll(ctx context.Context, subjectID, entityType, entityID string) error {
	if err := s.store.DeleteGrants(ctx, subjectID, entityType, entityID); err != nil {
		return fmt.Errorf("revoking grants: %w", err)
	}
	return nil
}

// Check reports whether the subject's effective level on the instance
// reaches required. CREATE is only meaningful at type-level scope, so
// a CREATE check against a concrete instance id is ErrInvalidScope.
func (s *PermissionService) Check(ctx context.Context, subjectID, entityType, entityID string, required entities.Level) (bool, error) {
	if !required.Valid() {
		return false, fmt.Errorf("level %v is not checkable", required)
	}
	if required == entities.LevelCreate && entityID != entities.AllInstances {
		return false, fmt.Errorf("create permission is checked against the type, not %s/%s: %w",
			entityType, entityID, entities.ErrInvalidScope)
	}

	effective, err := s.EffectiveLevel(ctx, subjectID, entityType, entityID)
	if err != nil {
		return false, err
	}
	return effective >= required, nil
}

// EffectiveLevel resolves the subject's effective level on an
// instance: max of direct, type-level, role-imported and one-hop
// inherited sources.
func (s *PermissionService) EffectiveLevel(ctx context.Context, subjectID, entityType, entityID string) (entities.Level, error) {
	subjects, err := s.subjectsFor(ctx, subjectID)
	if err != nil {
		return entities.LevelNone, err
	}

	grants, err := s.store.FindGrantsForSubjects(ctx, subjects, entityType)
	if err != nil {
		return entities.LevelNone, fmt.Errorf("loading grants: %w", err)
	}
	effective := baseLevel(grants, entityID)

	// Type-level scope has no parents to inherit from.
	if entityID == entities.AllInstances || effective >= entities.LevelOwner {
		return effective, nil
	}

	parents, err := s.graph.ParentsOf(ctx, entityType, entityID)
	if err != nil {
		return entities.LevelNone, err
	}
	if len(parents) == 0 {
		return effective, nil
	}

	// Group parents by type so each type's grants load once.
	parentIDsByType := make(map[string][]string)
	for _, p := range parents {
		parentIDsByType[p.ParentType] = append(parentIDsByType[p.ParentType], p.ParentID)
	}

	for parentType, parentIDs := range parentIDsByType {
		parentGrants, err := s.store.FindGrantsForSubjects(ctx, subjects, parentType)
		if err != nil {
			return entities.LevelNone, fmt.Errorf("loading parent grants: %w", err)
		}
		for _, parentID := range parentIDs {
			// One hop only: the parent's level is its own base, never
			// something the parent inherited in turn.
			parentBase := baseLevel(parentGrants, parentID)
			switch {
			case parentBase >= entities.LevelCreate:
				effective = entities.MaxLevel(effective, entities.CreateInheritanceFloor)
			case parentBase >= entities.LevelView:
				effective = entities.MaxLevel(effective, entities.LevelView)
			}
		}
	}
	return effective, nil
}

// WhereCondition produces a predicate over ids of the given type that
// is equivalent to "Check would return true", for use by listing
// queries. Type-level access short-circuits to an always-true
// predicate; otherwise the reachable id set is enumerated explicitly.
func (s *PermissionService) WhereCondition(ctx context.Context, subjectID, entityType string, required entities.Level) (entities.Predicate, error) {
	if !required.Valid() {
		return entities.NonePredicate(), fmt.Errorf("level %v is not checkable", required)
	}

	subjects, err := s.subjectsFor(ctx, subjectID)
	if err != nil {
		return entities.NonePredicate(), err
	}
	typeGrants, err := s.store.FindGrantsForSubjects(ctx, subjects, entityType)
	if err != nil {
		return entities.NonePredicate(), fmt.Errorf("loading grants: %w", err)
	}

	typeLevel := baseLevel(typeGrants, entities.AllInstances)
	if required == entities.LevelCreate {
		// CREATE exists only at type scope: all or nothing.
		if typeLevel >= entities.LevelCreate {
			return entities.AllPredicate(), nil
		}
		return entities.NonePredicate(), nil
	}
	if typeLevel >= required {
		return entities.AllPredicate(), nil
	}

	idSet := make(map[string]struct{})
	for _, g := range typeGrants {
		if g.EntityID != entities.AllInstances && g.Level >= required {
			idSet[g.EntityID] = struct{}{}
		}
	}

	// Inherited access only ever yields VIEW or the CREATE floor, so
	// the walk matters only when the requirement is at or below those.
	if required <= entities.CreateInheritanceFloor {
		if err := s.collectInheritedIDs(ctx, subjects, entityType, required, idSet); err != nil {
			return entities.NonePredicate(), err
		}
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return entities.IDsPredicate(ids), nil
}

// collectInheritedIDs adds ids of entityType instances that the
// subjects reach through one-hop parent inheritance.
func (s *PermissionService) collectInheritedIDs(ctx context.Context, subjects []string, entityType string, required entities.Level, idSet map[string]struct{}) error {
	allGrants, err := s.store.FindAllGrantsForSubjects(ctx, subjects)
	if err != nil {
		return fmt.Errorf("loading grants: %w", err)
	}

	for _, g := range allGrants {
		viewQualifies := required <= entities.LevelView && g.Level >= entities.LevelView
		floorQualifies := required <= entities.CreateInheritanceFloor && g.Level >= entities.LevelCreate
		if !viewQualifies && !floorQualifies {
			continue
		}

		filter := entities.EdgeFilter{ParentType: g.EntityType, ChildType: entityType}
		if g.EntityID != entities.AllInstances {
			filter.ParentID = g.EntityID
		}
		edges, err := s.store.FindEdges(ctx, filter)
		if err != nil {
			return fmt.Errorf("querying inherited edges: %w", err)
		}
		for _, edge := range edges {
			idSet[edge.ChildID] = struct{}{}
		}
	}
	return nil
}

// subjectsFor returns the acting subject plus the ids of every role
// entity the subject is linked under (one hop). Grants held by any of
// them resolve with their stored level imported unchanged.
func (s *PermissionService) subjectsFor(ctx context.Context, subjectID string) ([]string, error) {
	edges, err := s.store.FindEdges(ctx, entities.EdgeFilter{ChildID: subjectID})
	if err != nil {
		return nil, fmt.Errorf("querying role memberships: %w", err)
	}

	subjects := []string{subjectID}
	seen := map[string]struct{}{subjectID: {}}
	for _, edge := range edges {
		if _, ok := seen[edge.ParentID]; ok {
			continue
		}
		seen[edge.ParentID] = struct{}{}
		subjects = append(subjects, edge.ParentID)
	}
	return subjects, nil
}

// baseLevel is the highest stored level any grant in grants confers on
// the given id, counting exact-id and type-level rows.
func baseLevel(grants []entities.Grant, entityID string) entities.Level {
	level := entities.LevelNone
	for _, g := range grants {
		if g.EntityID != entityID && g.EntityID != entities.AllInstances {
			continue
		}
		level = entities.MaxLevel(level, g.Level)
	}
	return level
}
