package entities

// DefaultEntityTypes are the entity types seeded into a fresh store.
// Administrators can extend or deactivate them afterwards.
var DefaultEntityTypes = []EntityType{
	{
		Code:              "business",
		Label:             "Business",
		Icon:              "building",
		AllowedChildCodes: []string{"project", "role", "user"},
		Active:            true,
	},
	{
		Code:              "project",
		Label:             "Project",
		Icon:              "folder",
		AllowedChildCodes: []string{"task", "user"},
		Active:            true,
	},
	{
		Code:   "task",
		Label:  "Task",
		Icon:   "check-square",
		Active: true,
	},
	{
		Code:              "role",
		Label:             "Role",
		Icon:              "shield",
		AllowedChildCodes: []string{"user"},
		Active:            true,
	},
	{
		Code:   "user",
		Label:  "User",
		Icon:   "person",
		Active: true,
	},
}

// IsDefaultType reports whether code is one of the seeded types.
func IsDefaultType(code string) bool {
	for _, et := range DefaultEntityTypes {
		if et.Code == code {
			return true
		}
	}
	return false
}
