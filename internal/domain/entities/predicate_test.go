package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicateSQL(t *testing.T) {
	t.Run("match all", func(t *testing.T) {
		clause, params := AllPredicate().SQL("p.id")
		assert.Equal(t, "1 = 1", clause)
		assert.Empty(t, params)
	})

	t.Run("match none", func(t *testing.T) {
		clause, params := NonePredicate().SQL("p.id")
		assert.Equal(t, "1 = 0", clause)
		assert.Empty(t, params)
	})

	t.Run("id set is parameterized", func(t *testing.T) {
		pred := IDsPredicate([]string{"P1", "P2"})
		clause, params := pred.SQL("p.id")

		assert.Equal(t, "p.id IN (?,?)", clause)
		assert.Equal(t, []any{"P1", "P2"}, params)
		// Values never appear in the clause itself.
		assert.NotContains(t, clause, "P1")
	})

	t.Run("empty id set degrades to none", func(t *testing.T) {
		pred := IDsPredicate(nil)
		assert.Equal(t, MatchNone, pred.Kind)
	})
}
