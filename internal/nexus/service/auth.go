package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pixelforge/nexus/internal/nexus/domain"
	"github.com/pixelforge/nexus/internal/nexus/store"
	"github.com/pixelforge/nexus/pkg/cryptox"
	"github.com/pixelforge/nexus/pkg/idx"
	"github.com/pixelforge/nexus/pkg/jwtx"
	"github.com/pquerna/otp/totp"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong password.
	// Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrRoleUnknown is returned when a registration names a role that does
	// not exist.
	ErrRoleUnknown = errors.New("unknown role")

	// ErrUserExists is returned when the username or email is already taken.
	ErrUserExists = errors.New("username or email already in use")
)

// AuthService orchestrates registration, the two-step login flow and password
// changes. Login is stateless: step 1 never persists a "password ok" marker,
// step 2 re-verifies identity from the user id alone.
type AuthService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Issuer   string
	TokenTTL time.Duration
}

func (s *AuthService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

// Register creates a new user under an existing role. The password is hashed
// before anything is persisted; no token is issued.
func (s *AuthService) Register(ctx context.Context, username, email, password string, roleName domain.RoleName) (domain.User, error) {
	role, err := s.Store.Roles().GetRoleByName(ctx, roleName)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrRoleUnknown
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to resolve role: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		RoleID:       role.ID,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login is step 1. A wrong username and a wrong password produce the same
// ErrInvalidCredentials. With MFA disabled a token is issued immediately;
// with MFA enabled the caller gets a challenge and no token.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.LoginResult, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.LoginResult{}, ErrInvalidCredentials
		}
		return domain.LoginResult{}, fmt.Errorf("failed to verify password: %w", err)
	}

	if user.MFAEnabled {
		return domain.LoginResult{MFARequired: true, UserID: user.ID}, nil
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return domain.LoginResult{}, err
	}
	return domain.LoginResult{Token: token}, nil
}

// VerifyLoginCode is step 2. It trusts the user id handed back by step 1 and
// checks the submitted TOTP code against the confirmed secret only; the
// password is not re-checked.
func (s *AuthService) VerifyLoginCode(ctx context.Context, userID, code string) (domain.LoginResult, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.LoginResult{}, err
		}
		return domain.LoginResult{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.MFAEnabled || user.MFASecret == nil || *user.MFASecret == "" {
		return domain.LoginResult{}, ErrInvalidTOTPCode
	}
	if !totp.Validate(code, *user.MFASecret) {
		return domain.LoginResult{}, ErrInvalidTOTPCode
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return domain.LoginResult{}, err
	}
	return domain.LoginResult{Token: token}, nil
}

// UpdatePassword re-hashes and stores a new password after checking the
// current one. Identity comes from the verified token, never the body.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if err := cryptox.VerifyPassword(currentPassword, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to verify password: %w", err)
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// issueToken mints the bearer token: subject is the user id, the role claim
// carries the role name, expiry is fixed at the configured TTL.
func (s *AuthService) issueToken(ctx context.Context, user domain.User) (string, error) {
	role, err := s.Store.Roles().GetRoleByID(ctx, user.RoleID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve role: %w", err)
	}
	claims := jwtx.NewAccessClaims(user.ID, string(role.Name), s.Issuer, s.tokenTTL(), time.Now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
