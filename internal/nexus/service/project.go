package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pixelforge/nexus/internal/nexus/domain"
	"github.com/pixelforge/nexus/internal/nexus/store"
	"github.com/pixelforge/nexus/pkg/idx"
)

var (
	// ErrProjectExists is returned when the project name is already taken.
	ErrProjectExists = errors.New("project name already in use")

	// ErrLeadNotEligible is returned when the user named as project lead does
	// not hold the Project Lead role.
	ErrLeadNotEligible = errors.New("nominated lead does not hold the Project Lead role")

	// ErrAlreadyAssigned is returned when a developer is assigned to a
	// project they are already on. Duplicates are rejected, never silently
	// deduplicated.
	ErrAlreadyAssigned = errors.New("developer already assigned to project")
)

// ProjectService owns project lifecycle and developer assignment. Role gates
// (Admin for create/complete, Project Lead for assignment) sit in the HTTP
// middleware; the per-project relationship checks live here.
type ProjectService struct {
	Store store.Store
}

// Create makes a new Active project. An optional lead email must resolve to a
// user holding the Project Lead role.
func (s *ProjectService) Create(ctx context.Context, name, description string, deadline time.Time, leadEmail string) (domain.Project, error) {
	project := domain.Project{
		ID:          idx.New().String(),
		Name:        name,
		Description: description,
		Status:      domain.ProjectActive,
		Deadline:    deadline,
	}

	if leadEmail != "" {
		lead, err := s.Store.Users().GetUserByEmail(ctx, leadEmail)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Project{}, err
			}
			return domain.Project{}, fmt.Errorf("failed to look up lead: %w", err)
		}
		role, err := s.Store.Roles().GetRoleByID(ctx, lead.RoleID)
		if err != nil {
			return domain.Project{}, fmt.Errorf("failed to resolve lead role: %w", err)
		}
		if role.Name != domain.RoleProjectLead {
			return domain.Project{}, ErrLeadNotEligible
		}
		project.ProjectLeadID = &lead.ID
	}

	if err := s.Store.Projects().CreateProject(ctx, project); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Project{}, ErrProjectExists
		}
		return domain.Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// Get returns a project by id with its developer set loaded.
func (s *ProjectService) Get(ctx context.Context, projectID string) (domain.Project, error) {
	return s.Store.Projects().GetProjectByID(ctx, projectID)
}

// ListActive returns every Active project.
func (s *ProjectService) ListActive(ctx context.Context) ([]domain.Project, error) {
	return s.Store.Projects().ListActive(ctx)
}

// ListAssigned returns the Active projects the user is assigned to as a
// developer. Completed projects drop out of the listing.
func (s *ProjectService) ListAssigned(ctx context.Context, userID string) ([]domain.Project, error) {
	return s.Store.Projects().ListActiveByDeveloper(ctx, userID)
}

// Complete transitions a project Active -> Completed. Completing an already
// Completed project is a no-op, not an error.
func (s *ProjectService) Complete(ctx context.Context, projectID string) (domain.Project, error) {
	project, err := s.Store.Projects().GetProjectByID(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	if project.Status == domain.ProjectCompleted {
		return project, nil
	}

	if err := s.Store.Projects().SetStatus(ctx, projectID, domain.ProjectCompleted); err != nil {
		return domain.Project{}, fmt.Errorf("failed to complete project: %w", err)
	}
	project.Status = domain.ProjectCompleted
	return project, nil
}

// AssignDeveloper adds a developer, resolved by email, to the project. The
// caller must be this project's lead; membership is unique.
func (s *ProjectService) AssignDeveloper(ctx context.Context, projectID, callerID, developerEmail string) (domain.Project, error) {
	project, err := s.Store.Projects().GetProjectByID(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}

	if err := CanAssignDeveloper(&project, callerID); err != nil {
		return domain.Project{}, err
	}

	developer, err := s.Store.Users().GetUserByEmail(ctx, developerEmail)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Project{}, err
		}
		return domain.Project{}, fmt.Errorf("failed to look up developer: %w", err)
	}

	if project.HasDeveloper(developer.ID) {
		return domain.Project{}, ErrAlreadyAssigned
	}
	if err := s.Store.Projects().AddDeveloper(ctx, projectID, developer.ID); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Project{}, ErrAlreadyAssigned
		}
		return domain.Project{}, fmt.Errorf("failed to assign developer: %w", err)
	}

	project.DeveloperIDs = append(project.DeveloperIDs, developer.ID)
	return project, nil
}
