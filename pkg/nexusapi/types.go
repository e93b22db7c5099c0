package nexusapi

import "time"

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleName string `json:"roleName"`
}

// RegisterResponse confirms a registration. No token is issued.
type RegisterResponse struct {
	Message string `json:"message"`
}

// LoginRequest is the body for POST /auth/login (step 1).
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the step-1 outcome: either a token (MFA disabled) or an
// MFA challenge carrying the user id step 2 needs.
type LoginResponse struct {
	Token       string `json:"token,omitempty"`
	MFARequired bool   `json:"mfaRequired,omitempty"`
	UserID      string `json:"userId,omitempty"`
}

// VerifyLoginRequest is the body for POST /auth/verify-login (step 2).
type VerifyLoginRequest struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
}

// TokenResponse carries the issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UpdatePasswordRequest is the body for PATCH /auth/update-password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// MFAGenerateResponse is returned by GET /mfa/generate: everything the user
// needs to load the pending secret into an authenticator app.
type MFAGenerateResponse struct {
	Secret          string `json:"mfaSecret"`       // base32 seed for manual entry
	ProvisioningURI string `json:"provisioningUri"` // otpauth:// URL
	QRCodeDataURI   string `json:"qrCodeDataUri"`   // PNG data URI of the QR code
}

// MFAVerifyRequest is the body for POST /mfa/verify.
type MFAVerifyRequest struct {
	Code string `json:"code"`
}

// MessageResponse is a generic success envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateProjectRequest is the body for POST /projects.
type CreateProjectRequest struct {
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Deadline         time.Time `json:"deadline"`
	ProjectLeadEmail string    `json:"projectLeadEmail,omitempty"`
}

// AssignDeveloperRequest is the body for PATCH /projects/{projectId}/assign-developer.
type AssignDeveloperRequest struct {
	DeveloperEmail string `json:"developerEmail"`
}

// UserSummary is the trimmed user shape embedded in project responses.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ProjectResponse is the project shape returned by the project endpoints.
type ProjectResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Deadline    time.Time    `json:"deadline"`
	ProjectLead *UserSummary `json:"projectLead,omitempty"`
	Developers  []string     `json:"developers"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// DocumentResponse is the metadata shape returned for stored documents. The
// storage filename stays server-side.
type DocumentResponse struct {
	ID               string    `json:"id"`
	OriginalFilename string    `json:"originalFilename"`
	MimeType         string    `json:"mimeType"`
	Size             int64     `json:"size"`
	ProjectID        string    `json:"projectId"`
	UploadedBy       string    `json:"uploadedBy"`
	CreatedAt        time.Time `json:"createdAt"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
	Blobs    string `json:"blobs"`
}
