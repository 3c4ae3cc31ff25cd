package entities

import (
	"fmt"
	"strings"
)

// PredicateKind discriminates the Predicate union.
type PredicateKind int

const (
	// MatchNone matches no rows.
	MatchNone PredicateKind = iota
	// MatchAll matches every row.
	MatchAll
	// MatchIDs matches rows whose id is in IDs.
	MatchIDs
)

// Predicate is a composable boolean filter over entity ids, returned
// by permission resolution for use in listing queries. It is rendered
// into a parameterized fragment rather than assembled from raw input.
type Predicate struct {
	Kind PredicateKind
	IDs  []string
}

// NonePredicate matches no rows.
func NonePredicate() Predicate { return Predicate{Kind: MatchNone} }

// AllPredicate matches every row.
func AllPredicate() Predicate { return Predicate{Kind: MatchAll} }

// IDsPredicate matches rows whose id column is in ids. An empty id
// set degrades to MatchNone.
func IDsPredicate(ids []string) Predicate {
	if len(ids) == 0 {
		return NonePredicate()
	}
	return Predicate{Kind: MatchIDs, IDs: ids}
}

// SQL renders the predicate as a parameterized SQL fragment against
// the given id column. Ids are always bound as parameters, never
// interpolated.
func (p Predicate) SQL(column string) (string, []any) {
	switch p.Kind {
	case MatchAll:
		return "1 = 1", nil
	case MatchIDs:
		placeholders := make([]string, len(p.IDs))
		args := make([]any, len(p.IDs))
		for i, id := range p.IDs {
			placeholders[i] = "?"
			args[i] = id
		}
		return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ",")), args
	default:
		return "1 = 0", nil
	}
}
