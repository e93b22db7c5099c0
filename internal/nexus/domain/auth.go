package domain

// LoginResult is the outcome of login step 1. Exactly one branch is set:
// either a token (MFA disabled) or an MFA challenge with the user id that
// step 2 submits back. Nothing server-side marks step 1 as complete; step 2
// re-verifies identity from the id alone.
type LoginResult struct {
	Token       string
	MFARequired bool
	UserID      string
}

// MFAEnrollment is what secret generation hands back: the raw seed for
// manual entry plus a scannable provisioning artifact.
type MFAEnrollment struct {
	Secret          string // base32 seed
	ProvisioningURI string // otpauth:// URL
	QRCodePNG       []byte // rendered QR code
}
