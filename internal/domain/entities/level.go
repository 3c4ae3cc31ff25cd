package entities

import (
	"fmt"
	"strings"
)

// Level is a permission level. Levels form a strict total order and a
// grant at a level implies every lower level for the same scope.
type Level int

// Permission levels, lowest to highest. The ordinal values are stable
// and shared with stored grants; never renumber.
const (
	LevelNone   Level = 0
	LevelView   Level = 1
	LevelEdit   Level = 2
	LevelShare  Level = 3
	LevelDelete Level = 4
	LevelCreate Level = 5
	LevelOwner  Level = 6
)

// CreateInheritanceFloor is the level a subject gains on a child
// instance when it holds CREATE (or higher) on a linked parent.
// Deliberately lower than CREATE: CREATE itself only exists at
// type-level scope.
const CreateInheritanceFloor = LevelShare

var levelNames = map[Level]string{
	LevelNone:   "none",
	LevelView:   "view",
	LevelEdit:   "edit",
	LevelShare:  "share",
	LevelDelete: "delete",
	LevelCreate: "create",
	LevelOwner:  "owner",
}

// String returns the lowercase name of the level.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Valid reports whether l is a grantable level (VIEW..OWNER).
func (l Level) Valid() bool {
	return l >= LevelView && l <= LevelOwner
}

// ParseLevel parses a level name (case-insensitive).
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for l, n := range levelNames {
		if n == name && l != LevelNone {
			return l, nil
		}
	}
	return LevelNone, fmt.Errorf("unknown permission level %q", s)
}

// MaxLevel returns the higher of two levels.
func MaxLevel(a, b Level) Level {
	if a > b {
		return a
	}
	return b
}
