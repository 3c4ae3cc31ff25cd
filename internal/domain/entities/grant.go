package entities

import "time"

// AllInstances is the reserved entity id meaning "every instance of
// this type". It is never assigned to a real instance; CREATE-level
// permissions exist only at this scope.
const AllInstances = "ALL"

// Grant sources reported on resolved grants.
const (
	ViaDirect = "direct"
	ViaRole   = "role"
)

// Grant is a stored permission grant. At most one row exists per
// (SubjectID, EntityType, EntityID); re-granting raises the stored
// level, never lowers it.
type Grant struct {
	ID         string    `json:"id"`
	SubjectID  string    `json:"subject_id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Level      Level     `json:"level"`
	Via        string    `json:"via"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
