package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixelforge/nexus/internal/nexus/domain"
	"github.com/pixelforge/nexus/internal/nexus/store"
	"github.com/pixelforge/nexus/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newMigratedStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st *Store, username string) domain.User {
	t.Helper()
	ctx := context.Background()

	role, err := st.Roles().GetRoleByName(ctx, domain.RoleDeveloper)
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@pixelforge.test",
		PasswordHash: "hash",
		RoleID:       role.ID,
	}
	require.NoError(t, st.Users().CreateUser(ctx, u))
	return u
}

func TestMigrationsSeedRoles(t *testing.T) {
	st := newMigratedStore(t)

	roles, err := st.Roles().ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 3)

	names := make(map[domain.RoleName]bool, len(roles))
	for _, r := range roles {
		names[r.Name] = true
	}
	require.True(t, names[domain.RoleAdmin])
	require.True(t, names[domain.RoleProjectLead])
	require.True(t, names[domain.RoleDeveloper])
}

func TestCreateUserTranslatesUniqueViolations(t *testing.T) {
	ctx := context.Background()
	st := newMigratedStore(t)
	u := seedUser(t, st, "alice")

	dup := u
	dup.ID = idx.New().String()
	dup.Email = "other@pixelforge.test"
	require.ErrorIs(t, st.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	dup.Username = "other"
	dup.Email = u.Email
	require.ErrorIs(t, st.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
}

func TestGetUserNotFound(t *testing.T) {
	st := newMigratedStore(t)

	_, err := st.Users().GetUserByID(context.Background(), idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestPromoteMFASecretRequiresPending(t *testing.T) {
	ctx := context.Background()
	st := newMigratedStore(t)
	u := seedUser(t, st, "alice")

	// Without a pending secret the guarded update matches no row.
	require.ErrorIs(t, st.Users().PromoteMFASecret(ctx, u.ID), store.ErrNotFound)

	require.NoError(t, st.Users().SetMFATempSecret(ctx, u.ID, "SECRETSEED"))
	require.NoError(t, st.Users().PromoteMFASecret(ctx, u.ID))

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.MFAEnabled)
	require.Equal(t, "SECRETSEED", *got.MFASecret)
	require.Nil(t, got.MFATempSecret)

	// The pending slot was consumed; a second promote loses the race.
	require.ErrorIs(t, st.Users().PromoteMFASecret(ctx, u.ID), store.ErrNotFound)
}

func TestAddDeveloperEnforcesUniqueMembership(t *testing.T) {
	ctx := context.Background()
	st := newMigratedStore(t)
	u := seedUser(t, st, "dev")

	p := domain.Project{
		ID:       idx.New().String(),
		Name:     "Nova",
		Status:   domain.ProjectActive,
		Deadline: time.Now().Add(time.Hour).UTC(),
	}
	require.NoError(t, st.Projects().CreateProject(ctx, p))

	require.NoError(t, st.Projects().AddDeveloper(ctx, p.ID, u.ID))
	require.ErrorIs(t, st.Projects().AddDeveloper(ctx, p.ID, u.ID), store.ErrAlreadyExists)

	got, err := st.Projects().GetProjectByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, []string{u.ID}, got.DeveloperIDs)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newMigratedStore(t)

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		p := domain.Project{
			ID:       idx.New().String(),
			Name:     "Nova",
			Status:   domain.ProjectActive,
			Deadline: time.Now().Add(time.Hour).UTC(),
		}
		if err := tx.Projects().CreateProject(ctx, p); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	projects, err := st.Projects().ListActive(ctx)
	require.NoError(t, err)
	require.Empty(t, projects)
}
