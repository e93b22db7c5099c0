package http

import (
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

// Role names accepted by the authorization middleware.
const (
	roleAdmin       = string(domain.RoleAdmin)
	roleProjectLead = string(domain.RoleProjectLead)
	roleDeveloper   = string(domain.RoleDeveloper)
)

// AuthHandler handles registration, the two-step login and password changes.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister handles POST /auth/register
//
//	@Summary		Register a new user
//	@Description	Creates a user under an existing role. No token is issued.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexusapi.RegisterRequest	true	"New user details"
//	@Success		201		{object}	nexusapi.RegisterResponse	"User created"
//	@Failure		400		{object}	nexusapi.APIError			"Missing fields or unknown role"
//	@Failure		409		{object}	nexusapi.APIError			"Username or email already in use"
//	@Failure		500		{object}	nexusapi.APIError			"Internal server error"
//	@Router			/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req nexusapi.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		nexusapi.ErrInvalidInput.WithDescription("Invalid JSON body").WriteError(w)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" || req.RoleName == "" {
		nexusapi.ErrInvalidInput.WithDescription("username, email, password and roleName are required").WriteError(w)
		return
	}

	_, err := h.AuthService.Register(ctx, req.Username, req.Email, req.Password, domain.RoleName(req.RoleName))
	switch {
	case errors.Is(err, service.ErrRoleUnknown):
		nexusapi.ErrInvalidInput.WithDescription("Unknown role").WriteError(w)
		return
	case errors.Is(err, service.ErrUserExists):
		nexusapi.ErrConflict.WithDescription("Username or email already in use").WriteError(w)
		return
	case err != nil:
		log.Error("failed to register user", "err", err)
		nexusapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, nexusapi.RegisterResponse{Message: "User registered successfully"})
}

// HandleLogin handles POST /auth/login (step 1)
//
//	@Summary		Log in with username and password
//	@Description	Returns a bearer token, or an MFA challenge when MFA is enabled.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexusapi.LoginRequest	true	"Credentials"
//	@Success		200		{object}	nexusapi.LoginResponse	"Token or MFA challenge"
//	@Failure		400		{object}	nexusapi.APIError		"Missing fields"
//	@Failure		401		{object}	nexusapi.APIError		"Invalid username or password"
//	@Failure		500		{object}	nexusapi.APIError		"Internal server error"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req nexusapi.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		nexusapi.ErrInvalidInput.WithDescription("Invalid JSON body").WriteError(w)
		return
	}
	if req.Username == "" || req.Password == "" {
		nexusapi.ErrInvalidInput.WithDescription("username and password are required").WriteError(w)
		return
	}

	result, err := h.AuthService.Login(ctx, req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		nexusapi.ErrInvalidCredentials.WriteError(w)
		return
	case err != nil:
		log.Error("failed to log in", "err", err)
		nexusapi.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	if result.MFARequired {
		httpx.WriteJSON(w, http.StatusOK, nexusapi.LoginResponse{
			MFARequired: true,
			UserID:      result.UserID,
		})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, nexusapi.LoginResponse{Token: result.Token})
}

// HandleVerifyLogin handles POST /auth/verify-login (step 2)
//
//	@Summary		Complete an MFA login
//	@Description	Exchanges the step-1 user id plus a current TOTP code for a token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexusapi.VerifyLoginRequest	true	"User id and TOTP code"
//	@Success		200		{object}	nexusapi.TokenResponse		"Bearer token"
//	@Failure		400		{object}	nexusapi.APIError			"Missing fields"
//	@Failure		401		{object}	nexusapi.APIError			"Invalid MFA code"
//	@Failure		404		{object}	nexusapi.APIError			"Unknown user"
//	@Failure		500		{object}	nexusapi.APIError			"Internal server error"
//	@Router			/auth/verify-login [post].
func (h *AuthHandler) HandleVerifyLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req nexusapi.VerifyLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		nexusapi.ErrInvalidInput.WithDescription("Invalid JSON body").WriteError(w)
		return
	}
	if req.UserID == "" || req.Code == "" {
		nexusapi.ErrInvalidInput.WithDescription("userId and code are required").WriteError(w)
		return
	}

	result, err := h.AuthService.VerifyLoginCode(ctx, req.UserID, req.Code)
	switch {
	case errors.Is(err, store.ErrNotFound):
		nexusapi.ErrNotFound.WithDescription("User not found").WriteError(w)
		return
	case errors.Is(err, service.ErrInvalidTOTPCode):
		nexusapi.ErrInvalidMFACode.WriteError(w)
		return
	case err != nil:
		log.Error("failed to verify login code", "err", err)
		nexusapi.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, nexusapi.TokenResponse{Token: result.Token})
}

// HandleUpdatePassword handles PATCH /auth/update-password
//
//	@Summary		Change the caller's password
//	@Description	Verifies the current password before storing the new one.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexusapi.UpdatePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	nexusapi.MessageResponse		"Password updated"
//	@Failure		400		{object}	nexusapi.APIError				"Missing fields"
//	@Failure		401		{object}	nexusapi.APIError				"Wrong current password or missing token"
//	@Failure		500		{object}	nexusapi.APIError				"Internal server error"
//	@Router			/auth/update-password [patch].
func (h *AuthHandler) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		nexusapi.ErrInvalidCredentials.WithDescription("Missing authenticated user").WriteError(w)
		return
	}

	var req nexusapi.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		nexusapi.ErrInvalidInput.WithDescription("Invalid JSON body").WriteError(w)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		nexusapi.ErrInvalidInput.WithDescription("currentPassword and newPassword are required").WriteError(w)
		return
	}

	err := h.AuthService.UpdatePassword(ctx, userID, req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		nexusapi.ErrInvalidCredentials.WithDescription("Current password is incorrect").WriteError(w)
		return
	case errors.Is(err, store.ErrNotFound):
		nexusapi.ErrNotFound.WithDescription("User not found").WriteError(w)
		return
	case err != nil:
		log.Error("failed to update password", "user_id", userID, "err", err)
		nexusapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nexusapi.MessageResponse{Message: "Password updated successfully"})
}
