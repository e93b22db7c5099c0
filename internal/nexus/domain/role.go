package domain

import "time"

// RoleName is the closed set of roles the system knows about. Roles are
// referenced by users, never embedded, and the set never grows at runtime.
type RoleName string

const (
	RoleAdmin       RoleName = "Admin"
	RoleProjectLead RoleName = "Project Lead"
	RoleDeveloper   RoleName = "Developer"
)

// Valid reports whether n is one of the known roles.
func (n RoleName) Valid() bool {
	switch n {
	case RoleAdmin, RoleProjectLead, RoleDeveloper:
		return true
	}
	return false
}

func (n RoleName) String() string { return string(n) }

type Role struct {
	ID        string
	Name      RoleName
	CreatedAt time.Time
	UpdatedAt time.Time
}
