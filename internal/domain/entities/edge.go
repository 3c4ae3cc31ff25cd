package entities

import "time"

// DefaultEdgeLabel is the relationship label used when the caller does
// not supply one.
const DefaultEdgeLabel = "contains"

// Edge is a directed parent/child relationship between two registered
// entity instances. At most one active edge exists per
// (ParentType, ParentID, ChildType, ChildID) tuple.
type Edge struct {
	ID         string    `json:"id"`
	ParentType string    `json:"parent_type"`
	ParentID   string    `json:"parent_id"`
	ChildType  string    `json:"child_type"`
	ChildID    string    `json:"child_id"`
	Label      string    `json:"label"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// ParentRef identifies the parent endpoint of an edge.
type ParentRef struct {
	ParentType string `json:"parent_type"`
	ParentID   string `json:"parent_id"`
}

// EdgeFilter selects edges by any combination of endpoint fields.
// Empty fields match everything.
type EdgeFilter struct {
	ParentType string
	ParentID   string
	ChildType  string
	ChildID    string
}
