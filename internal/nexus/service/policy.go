package service

import (
	"errors"

	"github.com/pixelforge/nexus/internal/nexus/domain"
)

// Authorization denials. The distinction between "no lead set" and "someone
// else is the lead" matters for logging; externally both surface as a uniform
// forbidden response.
var (
	ErrNoProjectLead  = errors.New("project has no lead assigned")
	ErrNotProjectLead = errors.New("caller is not this project's lead")
	ErrNotPermitted   = errors.New("caller role is not permitted")
)

// CanAssignDeveloper requires the caller to be THIS project's lead. Holding
// the Project Lead role on some other project is not enough.
func CanAssignDeveloper(p *domain.Project, callerID string) error {
	if p.ProjectLeadID == nil {
		return ErrNoProjectLead
	}
	if *p.ProjectLeadID != callerID {
		return ErrNotProjectLead
	}
	return nil
}

// CanUploadDocument allows Admins and the project's own lead.
func CanUploadDocument(p *domain.Project, callerID string, callerRole domain.RoleName) error {
	if callerRole == domain.RoleAdmin {
		return nil
	}
	if p.IsLead(callerID) {
		return nil
	}
	return ErrNotPermitted
}

// IsForbidden reports whether err is an authorization denial.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrNoProjectLead) ||
		errors.Is(err, ErrNotProjectLead) ||
		errors.Is(err, ErrNotPermitted)
}
