package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
)

func TestGraphService_Link(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	e.register(t, "business", "B1", "Acme")
	e.register(t, "project", "P1", "Apollo")

	t.Run("creates an edge with the default label", func(t *testing.T) {
		edge, err := e.graph.Link(ctx, "business", "B1", "project", "P1", "")
		require.NoError(t, err)
		assert.Equal(t, entities.DefaultEdgeLabel, edge.Label)
		assert.True(t, edge.Active)
	})

	t.Run("linking twice yields the same edge", func(t *testing.T) {
		first, err := e.graph.Link(ctx, "business", "B1", "project", "P1", "")
		require.NoError(t, err)
		second, err := e.graph.Link(ctx, "business", "B1", "project", "P1", "")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, e.store.Edges, 1)
	})

	t.Run("reactivates an inactive edge", func(t *testing.T) {
		edge, err := e.graph.Link(ctx, "business", "B1", "project", "P1", "")
		require.NoError(t, err)
		e.store.Edges[edge.ID].Active = false

		relinked, err := e.graph.Link(ctx, "business", "B1", "project", "P1", "")
		require.NoError(t, err)
		assert.Equal(t, edge.ID, relinked.ID)
		assert.True(t, relinked.Active)
	})

	t.Run("rejects disallowed child types", func(t *testing.T) {
		e.register(t, "task", "T1", "Design")
		_, err := e.graph.Link(ctx, "business", "B1", "task", "T1", "")
		require.Error(t, err)
	})

	t.Run("rejects unregistered endpoints", func(t *testing.T) {
		_, err := e.graph.Link(ctx, "business", "B1", "project", "P404", "")
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestGraphService_Unlink(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	e.register(t, "business", "B1", "Acme")
	e.register(t, "project", "P1", "Apollo")
	edge := e.link(t, "business", "B1", "project", "P1")

	require.NoError(t, e.graph.Unlink(ctx, edge.ID))
	assert.Empty(t, e.store.Edges)

	t.Run("unlinking again is not an error", func(t *testing.T) {
		require.NoError(t, e.graph.Unlink(ctx, edge.ID))
	})
}

func TestGraphService_Traversal(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	e.register(t, "business", "B1", "Acme")
	e.register(t, "project", "P1", "Apollo")
	e.register(t, "project", "P2", "Borealis")
	e.register(t, "user", "U1", "Ada")
	e.link(t, "business", "B1", "project", "P1")
	e.link(t, "business", "B1", "project", "P2")
	e.link(t, "business", "B1", "user", "U1")

	t.Run("children of", func(t *testing.T) {
		ids, err := e.graph.ChildrenOf(ctx, "business", "B1", "project")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"P1", "P2"}, ids)
	})

	t.Run("parents of", func(t *testing.T) {
		parents, err := e.graph.ParentsOf(ctx, "project", "P1")
		require.NoError(t, err)
		require.Len(t, parents, 1)
		assert.Equal(t, entities.ParentRef{ParentType: "business", ParentID: "B1"}, parents[0])
	})

	t.Run("edges filter", func(t *testing.T) {
		edges, err := e.graph.Edges(ctx, entities.EdgeFilter{ParentID: "B1", ChildType: "user"})
		require.NoError(t, err)
		require.Len(t, edges, 1)
		assert.Equal(t, "U1", edges[0].ChildID)
	})

	t.Run("inactive edges are excluded", func(t *testing.T) {
		edges, err := e.graph.Edges(ctx, entities.EdgeFilter{ParentID: "B1", ChildType: "project"})
		require.NoError(t, err)
		e.store.Edges[edges[0].ID].Active = false

		ids, err := e.graph.ChildrenOf(ctx, "business", "B1", "project")
		require.NoError(t, err)
		assert.Len(t, ids, 1)
	})
}
