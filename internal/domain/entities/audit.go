package entities

import "time"

// AuditEntry is one row in the audit log written by the lifecycle
// orchestrator for bootstrap and delete operations.
type AuditEntry struct {
	ID         int64          `json:"id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
