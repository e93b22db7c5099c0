package service

import (
	"context"
	"testing"
	"time"

	"github.com/pixelforge/nexus/internal/nexus/domain"
	"github.com/pixelforge/nexus/internal/nexus/store"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestRegisterSucceedsOnceThenConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t, newTestStore(t))

	user, err := svc.Register(ctx, "alice", "alice@pixelforge.test", "hunter2!!", domain.RoleDeveloper)
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "hunter2!!", user.PasswordHash)

	_, err = svc.Register(ctx, "alice", "alice@pixelforge.test", "hunter2!!", domain.RoleDeveloper)
	require.ErrorIs(t, err, ErrUserExists)

	// Same email under a different username is still a conflict.
	_, err = svc.Register(ctx, "alice2", "alice@pixelforge.test", "hunter2!!", domain.RoleDeveloper)
	require.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newAuthService(t, newTestStore(t))

	_, err := svc.Register(context.Background(), "bob", "bob@pixelforge.test", "hunter2!!", domain.RoleName("Wizard"))
	require.ErrorIs(t, err, ErrRoleUnknown)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t, newTestStore(t))
	registerUser(t, svc, "alice", domain.RoleDeveloper)

	_, wrongPassword := svc.Login(ctx, "alice", "not-the-password")
	_, unknownUser := svc.Login(ctx, "nobody", "hunter2!!")

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestLoginIssuesDecodableToken(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t, newTestStore(t))
	user := registerUser(t, svc, "alice", domain.RoleProjectLead)

	result, err := svc.Login(ctx, "alice", "hunter2!!")
	require.NoError(t, err)
	require.False(t, result.MFARequired)
	require.NotEmpty(t, result.Token)

	claims, err := newTestSigner(t).Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, string(domain.RoleProjectLead), claims.Role)
	require.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestLoginWithMFAChallengesThenVerifies(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(t, st)
	mfa := &MFAService{Store: st, Issuer: testIssuer}
	user := registerUser(t, svc, "alice", domain.RoleDeveloper)

	enrollment, err := mfa.GenerateSecret(ctx, user.ID)
	require.NoError(t, err)
	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, mfa.VerifyAndEnable(ctx, user.ID, code))

	// Step 1: correct credentials yield a challenge, not a token.
	result, err := svc.Login(ctx, "alice", "hunter2!!")
	require.NoError(t, err)
	require.True(t, result.MFARequired)
	require.Equal(t, user.ID, result.UserID)
	require.Empty(t, result.Token)

	// Step 2 with a wrong code issues nothing.
	wrong := "000000"
	if current, err := totp.GenerateCode(enrollment.Secret, time.Now()); err == nil && current == wrong {
		wrong = "111111"
	}
	_, err = svc.VerifyLoginCode(ctx, user.ID, wrong)
	require.ErrorIs(t, err, ErrInvalidTOTPCode)

	// Step 2 with the current code issues the token.
	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	verified, err := svc.VerifyLoginCode(ctx, user.ID, code)
	require.NoError(t, err)
	require.NotEmpty(t, verified.Token)

	claims, err := newTestSigner(t).Verify(verified.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
}

func TestVerifyLoginCodeUnknownUser(t *testing.T) {
	svc := newAuthService(t, newTestStore(t))

	_, err := svc.VerifyLoginCode(context.Background(), "01J0000000000000000000XXXX", "123456")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestVerifyLoginCodeWithoutMFAEnabled(t *testing.T) {
	svc := newAuthService(t, newTestStore(t))
	user := registerUser(t, svc, "alice", domain.RoleDeveloper)

	_, err := svc.VerifyLoginCode(context.Background(), user.ID, "123456")
	require.ErrorIs(t, err, ErrInvalidTOTPCode)
}

func TestUpdatePassword(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t, newTestStore(t))
	user := registerUser(t, svc, "alice", domain.RoleDeveloper)

	require.ErrorIs(t, svc.UpdatePassword(ctx, user.ID, "wrong-current", "n3w-secret!"), ErrInvalidCredentials)

	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "hunter2!!", "n3w-secret!"))

	_, err := svc.Login(ctx, "alice", "hunter2!!")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	result, err := svc.Login(ctx, "alice", "n3w-secret!")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
}
