package entities

import "time"

// EntityType describes one configurable entity type on the platform,
// including which child types may be linked beneath it.
type EntityType struct {
	Code              string    `json:"code"`
	Label             string    `json:"label"`
	Icon              string    `json:"icon,omitempty"`
	AllowedChildCodes []string  `json:"allowed_child_codes,omitempty"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
}

// AllowsChild reports whether childCode may be linked under this type.
func (t *EntityType) AllowsChild(childCode string) bool {
	for _, code := range t.AllowedChildCodes {
		if code == childCode {
			return true
		}
	}
	return false
}
