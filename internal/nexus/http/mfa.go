package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pixelforge/nexus/internal/nexus/service"
	"github.com/pixelforge/nexus/pkg/httpx"
	"github.com/pixelforge/nexus/pkg/nexusapi"
	"github.com/pixelforge/nexus/pkg/slogx"
)

// MFAHandler handles TOTP enrollment for the authenticated user.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleGenerate handles GET /mfa/generate
//
//	@Summary		Generate a TOTP secret
//	@Description	Creates a pending TOTP secret and returns it with a provisioning URI and QR code. MFA stays disabled until verified.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	nexusapi.MFAGenerateResponse	"Pending secret, URI and QR code"
//	@Failure		401	{object}	nexusapi.APIError				"Invalid or missing access token"
//	@Failure		500	{object}	nexusapi.APIError				"Internal server error"
//	@Router			/mfa/generate [get].
func (h *MFAHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		nexusapi.ErrInvalidCredentials.WithDescription("Missing authenticated user").WriteError(w)
		return
	}

	enrollment, err := h.MFAService.GenerateSecret(ctx, userID)
	if err != nil {
		log.Error("failed to generate MFA secret", "user_id", userID, "err", err)
		nexusapi.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, nexusapi.MFAGenerateResponse{
		Secret:          enrollment.Secret,
		ProvisioningURI: enrollment.ProvisioningURI,
		QRCodeDataURI:   "data:image/png;base64," + base64.StdEncoding.EncodeToString(enrollment.QRCodePNG),
	})
}

// HandleVerify handles POST /mfa/verify
//
//	@Summary		Verify a TOTP code and enable MFA
//	@Description	Checks the code against the pending secret; on success the secret is confirmed and MFA enabled.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexusapi.MFAVerifyRequest	true	"TOTP code"
//	@Success		200		{object}	nexusapi.MessageResponse	"MFA enabled"
//	@Failure		400		{object}	nexusapi.APIError			"No pending secret or missing code"
//	@Failure		401		{object}	nexusapi.APIError			"Invalid MFA code"
//	@Failure		500		{object}	nexusapi.APIError			"Internal server error"
//	@Router			/mfa/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		nexusapi.ErrInvalidCredentials.WithDescription("Missing authenticated user").WriteError(w)
		return
	}

	var req nexusapi.MFAVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		nexusapi.ErrInvalidInput.WithDescription("Invalid JSON body").WriteError(w)
		return
	}
	if req.Code == "" {
		nexusapi.ErrInvalidInput.WithDescription("code is required").WriteError(w)
		return
	}

	err := h.MFAService.VerifyAndEnable(ctx, userID, req.Code)
	switch {
	case errors.Is(err, service.ErrMFANotReady):
		nexusapi.ErrMFANotReady.WriteError(w)
		return
	case errors.Is(err, service.ErrInvalidTOTPCode):
		nexusapi.ErrInvalidMFACode.WriteError(w)
		return
	case err != nil:
		log.Error("failed to verify MFA code", "user_id", userID, "err", err)
		nexusapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nexusapi.MessageResponse{Message: "MFA enabled successfully"})
}
