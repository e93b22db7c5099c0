package domain

import "time"

// ProjectStatus is the project lifecycle state. The only transition is
// Active -> Completed, one way.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "Active"
	ProjectCompleted ProjectStatus = "Completed"
)

// Project owns its developer membership set and its lead reference. Both are
// relations to users, not ownership of the users themselves.
type Project struct {
	ID            string
	Name          string
	Description   string
	Status        ProjectStatus
	Deadline      time.Time
	ProjectLeadID *string  // optional single lead
	DeveloperIDs  []string // unique membership, no duplicate assignment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasDeveloper reports whether userID is already in the developer set.
func (p *Project) HasDeveloper(userID string) bool {
	for _, id := range p.DeveloperIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsLead reports whether userID is this project's lead. Holding the
// Project Lead role somewhere else does not count.
func (p *Project) IsLead(userID string) bool {
	return p.ProjectLeadID != nil && *p.ProjectLeadID == userID
}
