package entities

import "time"

// InstanceRecord is the registry's denormalized view of one business
// record: enough to resolve a display name and confirm existence
// without touching the primary table. Keyed by (EntityType, EntityID).
type InstanceRecord struct {
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id"`
	DisplayName string    `json:"display_name"`
	DisplayCode string    `json:"display_code,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DisplayUpdate is a partial update to an instance record. Nil fields
// are left unchanged.
type DisplayUpdate struct {
	DisplayName *string
	DisplayCode *string
}

// Empty reports whether the update carries no changes.
func (u DisplayUpdate) Empty() bool {
	return u.DisplayName == nil && u.DisplayCode == nil
}
