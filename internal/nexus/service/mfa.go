package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"

	"github.com/pixelforge/nexus/internal/nexus/domain"
	"github.com/pixelforge/nexus/internal/nexus/store"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const qrCodeSize = 256 // pixels, square

var (
	ErrInvalidTOTPCode = errors.New("invalid TOTP code")

	// ErrMFANotReady means verification was attempted with no pending secret,
	// either because generation never happened or a concurrent verification
	// already promoted it.
	ErrMFANotReady = errors.New("no pending MFA secret")
)

// MFAService manages the TOTP secret lifecycle. A generated secret is pending
// until the user proves possession with a valid code; only then is it
// promoted to the confirmed secret and MFA enabled.
type MFAService struct {
	Store  store.Store
	Issuer string // label shown in authenticator apps
}

// GenerateSecret creates a fresh TOTP seed and stores it as the user's
// pending secret, replacing any earlier pending seed. MFA is not enabled yet.
func (s *MFAService) GenerateSecret(ctx context.Context, userID string) (domain.MFAEnrollment, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to look up user: %w", err)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	if err := s.Store.Users().SetMFATempSecret(ctx, userID, key.Secret()); err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to store pending secret: %w", err)
	}

	img, err := key.Image(qrCodeSize, qrCodeSize)
	if err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to render QR code: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to encode QR code: %w", err)
	}

	return domain.MFAEnrollment{
		Secret:          key.Secret(),
		ProvisioningURI: key.URL(),
		QRCodePNG:       buf.Bytes(),
	}, nil
}

// VerifyAndEnable checks the submitted code against the pending secret and,
// on a match, promotes it in a single guarded update. A wrong code leaves the
// pending secret in place for a retry.
func (s *MFAService) VerifyAndEnable(ctx context.Context, userID, code string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user.MFATempSecret == nil || *user.MFATempSecret == "" {
		return ErrMFANotReady
	}

	if !totp.Validate(code, *user.MFATempSecret) {
		return ErrInvalidTOTPCode
	}

	err = s.Store.Users().PromoteMFASecret(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		// The pending secret vanished between the read and the update, so a
		// concurrent verification won the promote.
		return ErrMFANotReady
	}
	if err != nil {
		return fmt.Errorf("failed to enable MFA: %w", err)
	}
	return nil
}

// Verify is the pure check used by login step 2: no state is touched.
func (s *MFAService) Verify(secret, code string) error {
	if !totp.Validate(code, secret) {
		return ErrInvalidTOTPCode
	}
	return nil
}
