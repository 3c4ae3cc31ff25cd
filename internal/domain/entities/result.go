package entities

// PurgeCounts reports what a single instance purge removed from the
// registry, graph and permission store.
type PurgeCounts struct {
	Deregistered  int `json:"deregistered"`
	EdgesRemoved  int `json:"edges_removed"`
	GrantsRevoked int `json:"grants_revoked"`
}

// DeleteResult summarizes an orchestrated delete, including everything
// removed on behalf of cascaded children.
type DeleteResult struct {
	EntityType      string `json:"entity_type"`
	EntityID        string `json:"entity_id"`
	Deregistered    int    `json:"deregistered"`
	EdgesRemoved    int    `json:"edges_removed"`
	GrantsRevoked   int    `json:"grants_revoked"`
	CascadeDeleted  int    `json:"cascade_deleted"`
	PrimaryDisposed bool   `json:"primary_disposed"`
}

// AddPurge folds one instance's purge counts into the aggregate.
func (r *DeleteResult) AddPurge(c *PurgeCounts) {
	r.Deregistered += c.Deregistered
	r.EdgesRemoved += c.EdgesRemoved
	r.GrantsRevoked += c.GrantsRevoked
}
