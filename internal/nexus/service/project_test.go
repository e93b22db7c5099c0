package service

import (
	"context"
	"testing"
	"time"

	"github.com/pixelforge/nexus/internal/nexus/domain"
	"github.com/pixelforge/nexus/internal/nexus/store"
	"github.com/stretchr/testify/require"
)

func TestCreateProject(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	projects := &ProjectService{Store: st}
	deadline := time.Now().Add(30 * 24 * time.Hour).UTC()

	lead := registerUser(t, auth, "lead", domain.RoleProjectLead)
	registerUser(t, auth, "dev", domain.RoleDeveloper)

	t.Run("with lead", func(t *testing.T) {
		p, err := projects.Create(ctx, "Nova", "engine rewrite", deadline, "lead@pixelforge.test")
		require.NoError(t, err)
		require.Equal(t, domain.ProjectActive, p.Status)
		require.NotNil(t, p.ProjectLeadID)
		require.Equal(t, lead.ID, *p.ProjectLeadID)
	})

	t.Run("without lead", func(t *testing.T) {
		p, err := projects.Create(ctx, "Comet", "", deadline, "")
		require.NoError(t, err)
		require.Nil(t, p.ProjectLeadID)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := projects.Create(ctx, "Nova", "again", deadline, "")
		require.ErrorIs(t, err, ErrProjectExists)
	})

	t.Run("lead without lead role", func(t *testing.T) {
		_, err := projects.Create(ctx, "Pulsar", "", deadline, "dev@pixelforge.test")
		require.ErrorIs(t, err, ErrLeadNotEligible)
	})

	t.Run("unknown lead email", func(t *testing.T) {
		_, err := projects.Create(ctx, "Quasar", "", deadline, "ghost@pixelforge.test")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestAssignDeveloper(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	projects := &ProjectService{Store: st}
	deadline := time.Now().Add(24 * time.Hour).UTC()

	lead := registerUser(t, auth, "lead", domain.RoleProjectLead)
	otherLead := registerUser(t, auth, "otherlead", domain.RoleProjectLead)
	dev := registerUser(t, auth, "dev", domain.RoleDeveloper)

	withLead, err := projects.Create(ctx, "Nova", "", deadline, "lead@pixelforge.test")
	require.NoError(t, err)
	leadless, err := projects.Create(ctx, "Comet", "", deadline, "")
	require.NoError(t, err)

	t.Run("lead assigns", func(t *testing.T) {
		p, err := projects.AssignDeveloper(ctx, withLead.ID, lead.ID, "dev@pixelforge.test")
		require.NoError(t, err)
		require.Equal(t, []string{dev.ID}, p.DeveloperIDs)
	})

	t.Run("second assignment rejected", func(t *testing.T) {
		_, err := projects.AssignDeveloper(ctx, withLead.ID, lead.ID, "dev@pixelforge.test")
		require.ErrorIs(t, err, ErrAlreadyAssigned)

		p, err := projects.Get(ctx, withLead.ID)
		require.NoError(t, err)
		require.Len(t, p.DeveloperIDs, 1)
	})

	t.Run("lead of another project denied", func(t *testing.T) {
		_, err := projects.AssignDeveloper(ctx, withLead.ID, otherLead.ID, "dev@pixelforge.test")
		require.ErrorIs(t, err, ErrNotProjectLead)
	})

	t.Run("no lead set", func(t *testing.T) {
		_, err := projects.AssignDeveloper(ctx, leadless.ID, lead.ID, "dev@pixelforge.test")
		require.ErrorIs(t, err, ErrNoProjectLead)
	})

	t.Run("unknown developer email", func(t *testing.T) {
		_, err := projects.AssignDeveloper(ctx, withLead.ID, lead.ID, "ghost@pixelforge.test")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := projects.AssignDeveloper(ctx, "01J0000000000000000000XXXX", lead.ID, "dev@pixelforge.test")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestCompleteProjectIsOneWayAndIdempotent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	projects := &ProjectService{Store: st}
	deadline := time.Now().Add(24 * time.Hour).UTC()

	p, err := projects.Create(ctx, "Nova", "", deadline, "")
	require.NoError(t, err)

	done, err := projects.Complete(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ProjectCompleted, done.Status)

	// Completing again is a quiet no-op.
	again, err := projects.Complete(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ProjectCompleted, again.Status)

	active, err := projects.ListActive(ctx)
	require.NoError(t, err)
	require.Empty(t, active)

	_, err = projects.Complete(ctx, "01J0000000000000000000XXXX")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListAssignedReturnsActiveOnly(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	projects := &ProjectService{Store: st}
	deadline := time.Now().Add(24 * time.Hour).UTC()

	lead := registerUser(t, auth, "lead", domain.RoleProjectLead)
	dev := registerUser(t, auth, "dev", domain.RoleDeveloper)

	first, err := projects.Create(ctx, "Nova", "", deadline, "lead@pixelforge.test")
	require.NoError(t, err)
	second, err := projects.Create(ctx, "Comet", "", deadline, "lead@pixelforge.test")
	require.NoError(t, err)

	_, err = projects.AssignDeveloper(ctx, first.ID, lead.ID, "dev@pixelforge.test")
	require.NoError(t, err)
	_, err = projects.AssignDeveloper(ctx, second.ID, lead.ID, "dev@pixelforge.test")
	require.NoError(t, err)

	assigned, err := projects.ListAssigned(ctx, dev.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 2)

	_, err = projects.Complete(ctx, first.ID)
	require.NoError(t, err)

	assigned, err = projects.ListAssigned(ctx, dev.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	require.Equal(t, second.ID, assigned[0].ID)
}
