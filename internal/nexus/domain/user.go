package domain

import "time"

// User is an account. At most one of MFATempSecret (pending, between generate
// and verify) or MFASecret+MFAEnabled (confirmed) is live for a setup cycle;
// confirming promotes the pending secret and clears it in the same update.
type User struct {
	ID            string
	Username      string
	Email         string
	PasswordHash  string  // argon2id PHC string
	RoleID        string  // foreign key to roles
	MFAEnabled    bool    // true once a secret has been confirmed
	MFASecret     *string // confirmed TOTP seed (base32), set iff MFAEnabled
	MFATempSecret *string // pending TOTP seed awaiting verification
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
