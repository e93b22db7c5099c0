package service

import (
	"errors"
	"testing"

	"github.com/pixelforge/nexus/internal/nexus/domain"
	"github.com/stretchr/testify/require"
)

func TestCanAssignDeveloper(t *testing.T) {
	leadID := "lead-1"

	t.Run("no lead set", func(t *testing.T) {
		p := domain.Project{}
		require.ErrorIs(t, CanAssignDeveloper(&p, leadID), ErrNoProjectLead)
	})

	t.Run("different lead", func(t *testing.T) {
		p := domain.Project{ProjectLeadID: &leadID}
		require.ErrorIs(t, CanAssignDeveloper(&p, "someone-else"), ErrNotProjectLead)
	})

	t.Run("project's own lead", func(t *testing.T) {
		p := domain.Project{ProjectLeadID: &leadID}
		require.NoError(t, CanAssignDeveloper(&p, leadID))
	})
}

func TestCanUploadDocument(t *testing.T) {
	leadID := "lead-1"
	p := domain.Project{ProjectLeadID: &leadID}

	require.NoError(t, CanUploadDocument(&p, "any-admin", domain.RoleAdmin))
	require.NoError(t, CanUploadDocument(&p, leadID, domain.RoleProjectLead))
	require.ErrorIs(t, CanUploadDocument(&p, "other-lead", domain.RoleProjectLead), ErrNotPermitted)
	require.ErrorIs(t, CanUploadDocument(&p, "dev-1", domain.RoleDeveloper), ErrNotPermitted)
}

func TestIsForbidden(t *testing.T) {
	require.True(t, IsForbidden(ErrNoProjectLead))
	require.True(t, IsForbidden(ErrNotProjectLead))
	require.True(t, IsForbidden(ErrNotPermitted))
	require.False(t, IsForbidden(errors.New("boom")))
	require.False(t, IsForbidden(nil))
}
