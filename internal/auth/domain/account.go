package domain

import "time"

// Account is a registered identity. Password and OTPs are only ever held as
// Argon2id (or legacy bcrypt) hashes.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	AvatarURL    string
	IsVerified   bool

	// Outstanding email verification code. Empty hash means none pending;
	// the expiry is zero whenever the hash is empty.
	VerifyOTPHash      string
	VerifyOTPExpiresAt time.Time

	// Outstanding password reset code, independent of the verification code.
	ResetOTPHash      string
	ResetOTPExpiresAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VerificationState is the account's position in the email verification flow.
type VerificationState string

const (
	Unverified VerificationState = "unverified"
	OTPPending VerificationState = "otp_pending"
	Verified   VerificationState = "verified"
)

// ResetState is the account's position in the password reset flow.
// A successful reset returns the account to NoResetPending.
type ResetState string

const (
	NoResetPending  ResetState = "no_reset_pending"
	ResetOTPPending ResetState = "reset_otp_pending"
)

func (a Account) VerificationState() VerificationState {
	switch {
	case a.IsVerified:
		return Verified
	case a.VerifyOTPHash != "":
		return OTPPending
	default:
		return Unverified
	}
}

func (a Account) ResetState() ResetState {
	if a.ResetOTPHash != "" {
		return ResetOTPPending
	}
	return NoResetPending
}

// Profile is the public view of an account returned to clients.
type Profile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

func (a Account) Profile() Profile {
	return Profile{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Role:       a.Role,
		AvatarURL:  a.AvatarURL,
		IsVerified: a.IsVerified,
		CreatedAt:  a.CreatedAt,
	}
}
