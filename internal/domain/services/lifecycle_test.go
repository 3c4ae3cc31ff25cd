package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
)

func TestLifecycleService_Bootstrap(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	e.register(t, "business", "B1", "Acme")

	t.Run("registers, links and grants owner", func(t *testing.T) {
		rec, err := e.lifecycle.Bootstrap(ctx, "project", "P1", "Apollo", "APL", BootstrapOptions{
			Parent:         &entities.ParentRef{ParentType: "business", ParentID: "B1"},
			OwnerSubjectID: "U1",
		})
		require.NoError(t, err)
		assert.Equal(t, "Apollo", rec.DisplayName)

		ids, err := e.graph.ChildrenOf(ctx, "business", "B1", "project")
		require.NoError(t, err)
		assert.Equal(t, []string{"P1"}, ids)

		level, err := e.permissions.EffectiveLevel(ctx, "U1", "project", "P1")
		require.NoError(t, err)
		assert.Equal(t, entities.LevelOwner, level)
	})

	t.Run("parent and owner are optional", func(t *testing.T) {
		_, err := e.lifecycle.Bootstrap(ctx, "project", "P2", "Borealis", "", BootstrapOptions{})
		require.NoError(t, err)

		parents, err := e.graph.ParentsOf(ctx, "project", "P2")
		require.NoError(t, err)
		assert.Empty(t, parents)
	})

	t.Run("a missing parent aborts before granting", func(t *testing.T) {
		_, err := e.lifecycle.Bootstrap(ctx, "project", "P3", "Citadel", "", BootstrapOptions{
			Parent:         &entities.ParentRef{ParentType: "business", ParentID: "B404"},
			OwnerSubjectID: "U1",
		})
		assert.ErrorIs(t, err, entities.ErrNotFound)

		level, err := e.permissions.EffectiveLevel(ctx, "U1", "project", "P3")
		require.NoError(t, err)
		assert.Equal(t, entities.LevelNone, level)
	})

	t.Run("writes an audit entry", func(t *testing.T) {
		log, err := e.store.FindAuditLog(ctx, "project", "P1")
		require.NoError(t, err)
		require.NotEmpty(t, log)
		assert.Equal(t, "lifecycle.bootstrap", log[0].Action)
	})
}

func TestLifecycleService_Delete(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	e.register(t, "business", "B1", "Acme")
	e.register(t, "project", "P1", "Apollo")
	e.link(t, "business", "B1", "project", "P1")
	e.grant(t, "U1", "project", "P1", entities.LevelDelete)
	e.grant(t, "U2", "project", "P1", entities.LevelView)

	var disposed []string
	result, err := e.lifecycle.Delete(ctx, "U1", "project", "P1", DeleteOptions{
		RemoveGrants: true,
		DisposePrimary: func(_ context.Context, entityType, entityID string) error {
			disposed = append(disposed, entityType+"/"+entityID)
			return nil
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Deregistered)
	assert.Equal(t, 1, result.EdgesRemoved)
	assert.Equal(t, 2, result.GrantsRevoked)
	assert.Equal(t, 0, result.CascadeDeleted)
	assert.True(t, result.PrimaryDisposed)
	assert.Equal(t, []string{"project/P1"}, disposed)

	exists, err := e.registry.Exists(ctx, "project", "P1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, e.store.Edges)
	assert.Empty(t, e.store.Grants)

	t.Run("writes an audit entry", func(t *testing.T) {
		log, err := e.store.FindAuditLog(ctx, "project", "P1")
		require.NoError(t, err)
		require.NotEmpty(t, log)
		assert.Equal(t, "lifecycle.delete", log[0].Action)
	})
}

func TestLifecycleService_DeleteKeepsGrants(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	e.register(t, "project", "P1", "Apollo")
	e.grant(t, "U1", "project", "P1", entities.LevelDelete)

	result, err := e.lifecycle.Delete(ctx, "U1", "project", "P1", DeleteOptions{RemoveGrants: false})
	require.NoError(t, err)
	assert.Equal(t, 0, result.GrantsRevoked)
	assert.Len(t, e.store.Grants, 1)
}

func TestLifecycleService_DeleteAuthorization(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	e.register(t, "project", "P1", "Apollo")
	e.grant(t, "U1", "project", "P1", entities.LevelEdit)

	t.Run("edit is not enough", func(t *testing.T) {
		_, err := e.lifecycle.Delete(ctx, "U1", "project", "P1", DeleteOptions{})
		assert.ErrorIs(t, err, entities.ErrAuthorizationDenied)

		exists, err := e.registry.Exists(ctx, "project", "P1")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("skip flag bypasses the check", func(t *testing.T) {
		result, err := e.lifecycle.Delete(ctx, "U1", "project", "P1", DeleteOptions{SkipAuthorizationCheck: true})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Deregistered)
	})
}

func TestLifecycleService_Cascade(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	e.register(t, "business", "B1", "Acme")
	e.register(t, "project", "P1", "Apollo")
	e.register(t, "project", "P2", "Borealis")
	e.register(t, "task", "T1", "Design")
	e.link(t, "business", "B1", "project", "P1")
	e.link(t, "business", "B1", "project", "P2")
	e.link(t, "project", "P1", "task", "T1")

	e.grant(t, "U1", "business", entities.AllInstances, entities.LevelDelete)
	e.grant(t, "U1", "project", entities.AllInstances, entities.LevelDelete)
	e.grant(t, "U1", "task", entities.AllInstances, entities.LevelDelete)

	var disposed []string
	result, err := e.lifecycle.Delete(ctx, "U1", "business", "B1", DeleteOptions{
		CascadeChildren: true,
		RemoveGrants:    true,
		DisposePrimary: func(_ context.Context, entityType, entityID string) error {
			disposed = append(disposed, entityType+"/"+entityID)
			return nil
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Deregistered)
	assert.Equal(t, 3, result.EdgesRemoved)
	assert.Equal(t, 3, result.CascadeDeleted)
	assert.Empty(t, e.store.Instances)
	assert.Empty(t, e.store.Edges)

	// Depth first: children are disposed before their parents.
	assert.Equal(t, []string{"task/T1", "project/P1", "project/P2", "business/B1"}, disposed)
}

func TestLifecycleService_CascadeChildAuthorization(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	e.register(t, "business", "B1", "Acme")
	e.register(t, "project", "P1", "Apollo")
	e.link(t, "business", "B1", "project", "P1")

	// DELETE on the parent only; the child check must fail.
	e.grant(t, "U1", "business", "B1", entities.LevelDelete)

	_, err := e.lifecycle.Delete(ctx, "U1", "business", "B1", DeleteOptions{CascadeChildren: true})

	var partial *entities.PartialDeleteError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "cascade", partial.Step)
	assert.ErrorIs(t, err, entities.ErrAuthorizationDenied)

	// Nothing was purged: the child check runs before any mutation.
	exists, err := e.registry.Exists(ctx, "business", "B1")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = e.registry.Exists(ctx, "project", "P1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLifecycleService_PartialFailure(t *testing.T) {
	t.Run("purge failure", func(t *testing.T) {
		e := newTestEngine(t)
		ctx := context.Background()
		e.register(t, "project", "P1", "Apollo")
		e.store.PurgeErr = errors.New("disk full")

		_, err := e.lifecycle.Delete(ctx, "U1", "project", "P1", DeleteOptions{SkipAuthorizationCheck: true})

		var partial *entities.PartialDeleteError
		require.ErrorAs(t, err, &partial)
		assert.Equal(t, "purge", partial.Step)
		assert.Equal(t, 0, partial.Result.Deregistered)
	})

	t.Run("disposer failure after a committed purge", func(t *testing.T) {
		e := newTestEngine(t)
		ctx := context.Background()
		e.register(t, "project", "P1", "Apollo")

		_, err := e.lifecycle.Delete(ctx, "U1", "project", "P1", DeleteOptions{
			SkipAuthorizationCheck: true,
			DisposePrimary: func(_ context.Context, _, _ string) error {
				return errors.New("primary table locked")
			},
		})

		var partial *entities.PartialDeleteError
		require.ErrorAs(t, err, &partial)
		assert.Equal(t, "dispose-primary", partial.Step)
		assert.Equal(t, 1, partial.Result.Deregistered)
		assert.False(t, partial.Result.PrimaryDisposed)

		// The purge is not rolled back.
		exists, regErr := e.registry.Exists(ctx, "project", "P1")
		require.NoError(t, regErr)
		assert.False(t, exists)
	})
}

func TestLifecycleService_CycleGuard(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	// A self-referential type makes a relationship cycle expressible.
	require.NoError(t, e.catalog.Save(ctx, &entities.EntityType{
		Code:              "group",
		Label:             "Group",
		AllowedChildCodes: []string{"group"},
		Active:            true,
	}))
	e.register(t, "group", "G1", "Alpha")
	e.register(t, "group", "G2", "Beta")
	e.link(t, "group", "G1", "group", "G2")
	e.link(t, "group", "G2", "group", "G1")

	_, err := e.lifecycle.Delete(ctx, "U1", "group", "G1", DeleteOptions{
		CascadeChildren:        true,
		SkipAuthorizationCheck: true,
	})

	var partial *entities.PartialDeleteError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "cascade", partial.Step)
	assert.Contains(t, partial.Err.Error(), "cycle")
}
