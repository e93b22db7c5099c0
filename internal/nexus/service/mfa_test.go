package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pixelforge/nexus/internal/nexus/domain"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestGenerateSecretStoresPendingOnly(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	mfa := &MFAService{Store: st, Issuer: testIssuer}
	user := registerUser(t, auth, "alice", domain.RoleDeveloper)

	enrollment, err := mfa.GenerateSecret(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.True(t, strings.HasPrefix(enrollment.ProvisioningURI, "otpauth://totp/"))
	require.Contains(t, enrollment.ProvisioningURI, testIssuer)
	require.True(t, bytes.HasPrefix(enrollment.QRCodePNG, pngMagic))

	got, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, got.MFAEnabled)
	require.Nil(t, got.MFASecret)
	require.NotNil(t, got.MFATempSecret)
	require.Equal(t, enrollment.Secret, *got.MFATempSecret)
}

func TestGenerateSecretReplacesPriorPending(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	mfa := &MFAService{Store: st, Issuer: testIssuer}
	user := registerUser(t, auth, "alice", domain.RoleDeveloper)

	first, err := mfa.GenerateSecret(ctx, user.ID)
	require.NoError(t, err)
	second, err := mfa.GenerateSecret(ctx, user.ID)
	require.NoError(t, err)
	require.NotEqual(t, first.Secret, second.Secret)

	got, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, second.Secret, *got.MFATempSecret)
}

func TestVerifyAndEnablePromotesPendingSecret(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	mfa := &MFAService{Store: st, Issuer: testIssuer}
	user := registerUser(t, auth, "alice", domain.RoleDeveloper)

	enrollment, err := mfa.GenerateSecret(ctx, user.ID)
	require.NoError(t, err)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, mfa.VerifyAndEnable(ctx, user.ID, code))

	got, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, got.MFAEnabled)
	require.NotNil(t, got.MFASecret)
	require.Equal(t, enrollment.Secret, *got.MFASecret)
	require.Nil(t, got.MFATempSecret)
}

func TestVerifyAndEnableWrongCodeKeepsPending(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := newAuthService(t, st)
	mfa := &MFAService{Store: st, Issuer: testIssuer}
	user := registerUser(t, auth, "alice", domain.RoleDeveloper)

	enrollment, err := mfa.GenerateSecret(ctx, user.ID)
	require.NoError(t, err)

	wrong := "000000"
	if current, err := totp.GenerateCode(enrollment.Secret, time.Now()); err == nil && current == wrong {
		wrong = "111111"
	}
	require.ErrorIs(t, mfa.VerifyAndEnable(ctx, user.ID, wrong), ErrInvalidTOTPCode)

	// Pending secret survives for a retry.
	got, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, got.MFAEnabled)
	require.NotNil(t, got.MFATempSecret)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, mfa.VerifyAndEnable(ctx, user.ID, code))
}

func TestVerifyAndEnableBeforeGenerate(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	mfa := &MFAService{Store: st, Issuer: testIssuer}
	user := registerUser(t, auth, "alice", domain.RoleDeveloper)

	require.ErrorIs(t, mfa.VerifyAndEnable(context.Background(), user.ID, "123456"), ErrMFANotReady)
}

func TestVerifyIsPure(t *testing.T) {
	mfa := &MFAService{Issuer: testIssuer}
	secret := "JBSWY3DPEHPK3PXP"

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, mfa.Verify(secret, code))

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	require.ErrorIs(t, mfa.Verify(secret, wrong), ErrInvalidTOTPCode)
}
