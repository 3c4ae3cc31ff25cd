package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelOrdering(t *testing.T) {
	// The resolver and stored grants rely on these ordinals.
	assert.True(t, LevelView < LevelEdit)
	assert.True(t, LevelEdit < LevelShare)
	assert.True(t, LevelShare < LevelDelete)
	assert.True(t, LevelDelete < LevelCreate)
	assert.True(t, LevelCreate < LevelOwner)
}

func TestLevelValid(t *testing.T) {
	assert.False(t, LevelNone.Valid())
	assert.True(t, LevelView.Valid())
	assert.True(t, LevelOwner.Valid())
	assert.False(t, Level(7).Valid())
}

func TestParseLevel(t *testing.T) {
	t.Run("parses all names", func(t *testing.T) {
		for _, name := range []string{"view", "edit", "share", "delete", "create", "owner"} {
			level, err := ParseLevel(name)
			require.NoError(t, err)
			assert.Equal(t, name, level.String())
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		level, err := ParseLevel("  OWNER ")
		require.NoError(t, err)
		assert.Equal(t, LevelOwner, level)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := ParseLevel("admin")
		require.Error(t, err)
	})

	t.Run("rejects none", func(t *testing.T) {
		_, err := ParseLevel("none")
		require.Error(t, err)
	})
}

func TestMaxLevel(t *testing.T) {
	assert.Equal(t, LevelOwner, MaxLevel(LevelView, LevelOwner))
	assert.Equal(t, LevelOwner, MaxLevel(LevelOwner, LevelView))
	assert.Equal(t, LevelEdit, MaxLevel(LevelEdit, LevelEdit))
}

func TestCreateInheritanceFloor(t *testing.T) {
	// The floor is deliberately below CREATE.
	assert.True(t, CreateInheritanceFloor < LevelCreate)
}
