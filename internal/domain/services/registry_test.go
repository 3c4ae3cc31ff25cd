package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
)

func TestRegistryService_Register(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	t.Run("creates a record", func(t *testing.T) {
		rec, err := e.registry.Register(ctx, "project", "P1", "Apollo", "APL")
		require.NoError(t, err)
		assert.Equal(t, "Apollo", rec.DisplayName)
		assert.Equal(t, "APL", rec.DisplayCode)
		assert.True(t, rec.Active)
	})

	t.Run("idempotent with last write winning", func(t *testing.T) {
		_, err := e.registry.Register(ctx, "project", "P1", "Apollo II", "APL2")
		require.NoError(t, err)

		rec, err := e.registry.Get(ctx, "project", "P1")
		require.NoError(t, err)
		assert.Equal(t, "Apollo II", rec.DisplayName)
		assert.Len(t, e.store.Instances, 1)
	})

	t.Run("rejects unknown entity types", func(t *testing.T) {
		_, err := e.registry.Register(ctx, "galaxy", "G1", "Milky Way", "")
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("rejects the reserved id", func(t *testing.T) {
		_, err := e.registry.Register(ctx, "project", entities.AllInstances, "Everything", "")
		assert.ErrorIs(t, err, entities.ErrInvalidScope)
	})

	t.Run("requires a display name", func(t *testing.T) {
		_, err := e.registry.Register(ctx, "project", "P2", "", "")
		require.Error(t, err)
	})
}

func TestRegistryService_UpdateDisplay(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	e.register(t, "project", "P1", "Apollo")

	t.Run("partial update", func(t *testing.T) {
		code := "APL"
		rec, err := e.registry.UpdateDisplay(ctx, "project", "P1", entities.DisplayUpdate{DisplayCode: &code})
		require.NoError(t, err)
		assert.Equal(t, "Apollo", rec.DisplayName)
		assert.Equal(t, "APL", rec.DisplayCode)
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		rec, err := e.registry.UpdateDisplay(ctx, "project", "P1", entities.DisplayUpdate{})
		require.NoError(t, err)
		assert.Equal(t, "Apollo", rec.DisplayName)
	})

	t.Run("missing record", func(t *testing.T) {
		name := "Ghost"
		_, err := e.registry.UpdateDisplay(ctx, "project", "P404", entities.DisplayUpdate{DisplayName: &name})
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestRegistryService_Remove(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	e.register(t, "project", "P1", "Apollo")

	require.NoError(t, e.registry.Remove(ctx, "project", "P1"))

	exists, err := e.registry.Exists(ctx, "project", "P1")
	require.NoError(t, err)
	assert.False(t, exists)

	t.Run("removing again is not an error", func(t *testing.T) {
		require.NoError(t, e.registry.Remove(ctx, "project", "P1"))
	})
}

func TestRegistryService_RemoveLeavesEdgesAndGrants(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	e.register(t, "business", "B1", "Acme")
	e.register(t, "project", "P1", "Apollo")
	e.link(t, "business", "B1", "project", "P1")
	e.grant(t, "U1", "project", "P1", entities.LevelEdit)

	require.NoError(t, e.registry.Remove(ctx, "project", "P1"))

	// Only the orchestrator touches edges and grants.
	assert.Len(t, e.store.Edges, 1)
	assert.Len(t, e.store.Grants, 1)
}
