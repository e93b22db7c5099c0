package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pixelforge/nexus/internal/nexus/domain"
	"github.com/pixelforge/nexus/internal/nexus/service"
	"github.com/pixelforge/nexus/internal/nexus/store"
	"github.com/pixelforge/nexus/pkg/httpx"
	"github.com/pixelforge/nexus/pkg/nexusapi"
	"github.com/pixelforge/nexus/pkg/slogx"
)

// ProjectsHandler handles project lifecycle and developer assignment.
type ProjectsHandler struct {
	ProjectService *service.ProjectService
	Store          store.Store
}

// toProjectResponse builds the wire shape, resolving the lead reference to a
// summary. A lead that cannot be resolved is omitted rather than failing the
// whole response.
func (h *ProjectsHandler) toProjectResponse(ctx context.Context, p domain.Project) nexusapi.ProjectResponse {
	resp := nexusapi.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		Deadline:    p.Deadline,
		Developers:  p.DeveloperIDs,
		CreatedAt:   p.CreatedAt,
	}
	if resp.Developers == nil {
		resp.Developers = []string{}
	}

	if p.ProjectLeadID != nil {
		lead, err := h.Store.Users().GetUserByID(ctx, *p.ProjectLeadID)
		if err != nil {
			slogx.FromContext(ctx).Warn("failed to resolve project lead", "project_id", p.ID, "err", err)
		} else {
			resp.ProjectLead = &nexusapi.UserSummary{
				ID:       lead.ID,
				Username: lead.Username,
				Email:    lead.Email,
			}
		}
	}
	return resp
}

func (h *ProjectsHandler) toProjectResponses(ctx context.Context, projects []domain.Project) []nexusapi.ProjectResponse {
	out := make([]nexusapi.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, h.toProjectResponse(ctx, p))
	}
	return out
}

// HandleCreate handles POST /projects
//
//	@Summary		Create a project
//	@Description	Creates an Active project, optionally naming a lead by email. Admin only.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexusapi.CreateProjectRequest	true	"Project details"
//	@Success		201		{object}	nexusapi.ProjectResponse		"Created project"
//	@Failure		400		{object}	nexusapi.APIError				"Missing fields or ineligible lead"
//	@Failure		403		{object}	nexusapi.APIError				"Caller is not an Admin"
//	@Failure		409		{object}	nexusapi.APIError				"Project name already in use"
//	@Failure		500		{object}	nexusapi.APIError				"Internal server error"
//	@Router			/projects [post].
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req nexusapi.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		nexusapi.ErrInvalidInput.WithDescription("Invalid JSON body").WriteError(w)
		return
	}
	if req.Name == "" || req.Deadline.IsZero() {
		nexusapi.ErrInvalidInput.WithDescription("name and deadline are required").WriteError(w)
		return
	}

	project, err := h.ProjectService.Create(ctx, req.Name, req.Description, req.Deadline, req.ProjectLeadEmail)
	switch {
	case errors.Is(err, service.ErrProjectExists):
		nexusapi.ErrConflict.WithDescription("Project name already in use").WriteError(w)
		return
	case errors.Is(err, service.ErrLeadNotEligible):
		nexusapi.ErrInvalidInput.WithDescription("Nominated lead does not hold the Project Lead role").WriteError(w)
		return
	case errors.Is(err, store.ErrNotFound):
		nexusapi.ErrInvalidInput.WithDescription("No user with that project lead email").WriteError(w)
		return
	case err != nil:
		log.Error("failed to create project", "err", err)
		nexusapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, h.toProjectResponse(ctx, project))
}

// HandleList handles GET /projects
//
//	@Summary		List active projects
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		nexusapi.ProjectResponse	"Active projects"
//	@Failure		401	{object}	nexusapi.APIError			"Invalid or missing access token"
//	@Failure		500	{object}	nexusapi.APIError			"Internal server error"
//	@Router			/projects [get].
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects, err := h.ProjectService.ListActive(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list projects", "err", err)
		nexusapi.ErrServerError.WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.toProjectResponses(ctx, projects))
}

// HandleListAssigned handles GET /projects/assigned
//
//	@Summary		List the caller's assigned active projects
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		nexusapi.ProjectResponse	"Assigned active projects"
//	@Failure		401	{object}	nexusapi.APIError			"Invalid or missing access token"
//	@Failure		403	{object}	nexusapi.APIError			"Caller is not a Developer"
//	@Failure		500	{object}	nexusapi.APIError			"Internal server error"
//	@Router			/projects/assigned [get].
func (h *ProjectsHandler) HandleListAssigned(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		nexusapi.ErrInvalidCredentials.WithDescription("Missing authenticated user").WriteError(w)
		return
	}

	projects, err := h.ProjectService.ListAssigned(ctx, userID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list assigned projects", "user_id", userID, "err", err)
		nexusapi.ErrServerError.WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.toProjectResponses(ctx, projects))
}

// HandleComplete handles PATCH /projects/{id}/complete
//
//	@Summary		Mark a project completed
//	@Description	One-way Active to Completed transition; completing twice is a no-op. Admin only.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string						true	"Project id"
//	@Success		200	{object}	nexusapi.ProjectResponse	"Completed project"
//	@Failure		403	{object}	nexusapi.APIError			"Caller is not an Admin"
//	@Failure		404	{object}	nexusapi.APIError			"Project not found"
//	@Failure		500	{object}	nexusapi.APIError			"Internal server error"
//	@Router			/projects/{id}/complete [patch].
func (h *ProjectsHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID := r.PathValue("id")

	project, err := h.ProjectService.Complete(ctx, projectID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		nexusapi.ErrNotFound.WithDescription("Project not found").WriteError(w)
		return
	case err != nil:
		slogx.FromContext(ctx).Error("failed to complete project", "project_id", projectID, "err", err)
		nexusapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, h.toProjectResponse(ctx, project))
}

// HandleAssignDeveloper handles PATCH /projects/{projectId}/assign-developer
//
//	@Summary		Assign a developer to a project
//	@Description	The caller must be this project's lead; the developer is resolved by email.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			projectId	path		string							true	"Project id"
//	@Param			request		body		nexusapi.AssignDeveloperRequest	true	"Developer email"
//	@Success		200			{object}	nexusapi.ProjectResponse		"Updated project"
//	@Failure		400			{object}	nexusapi.APIError				"Missing developer email"
//	@Failure		403			{object}	nexusapi.APIError				"Caller is not this project's lead"
//	@Failure		404			{object}	nexusapi.APIError				"Project or developer not found"
//	@Failure		409			{object}	nexusapi.APIError				"Developer already assigned"
//	@Failure		500			{object}	nexusapi.APIError				"Internal server error"
//	@Router			/projects/{projectId}/assign-developer [patch].
func (h *ProjectsHandler) HandleAssignDeveloper(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	projectID := r.PathValue("projectId")

	callerID := httpx.UserIDFromContext(ctx)
	if callerID == "" {
		nexusapi.ErrInvalidCredentials.WithDescription("Missing authenticated user").WriteError(w)
		return
	}

	var req nexusapi.AssignDeveloperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		nexusapi.ErrInvalidInput.WithDescription("Invalid JSON body").WriteError(w)
		return
	}
	if req.DeveloperEmail == "" {
		nexusapi.ErrInvalidInput.WithDescription("developerEmail is required").WriteError(w)
		return
	}

	project, err := h.ProjectService.AssignDeveloper(ctx, projectID, callerID, req.DeveloperEmail)
	switch {
	case errors.Is(err, store.ErrNotFound):
		nexusapi.ErrNotFound.WithDescription("Project or developer not found").WriteError(w)
		return
	case service.IsForbidden(err):
		log.Warn("assignment denied", "project_id", projectID, "caller_id", callerID, "reason", err)
		nexusapi.ErrForbidden.WriteError(w)
		return
	case errors.Is(err, service.ErrAlreadyAssigned):
		nexusapi.ErrAlreadyAssigned.WriteError(w)
		return
	case err != nil:
		log.Error("failed to assign developer", "project_id", projectID, "err", err)
		nexusapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, h.toProjectResponse(ctx, project))
}
