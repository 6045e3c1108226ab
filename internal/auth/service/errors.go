package service

import (
	"errors"
	"time"
)

var (
	ErrMissingField       = errors.New("missing_field")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidAvatar      = errors.New("invalid_avatar")
	ErrAccountNotFound    = errors.New("account_not_found")
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidSession     = errors.New("invalid_session")

	ErrAlreadyVerified = errors.New("already_verified")
	ErrNoOTPPending    = errors.New("no_otp_pending")
	ErrOTPExpired      = errors.New("otp_expired")
	ErrInvalidOTP      = errors.New("invalid_otp")
)

const (
	// DefaultOTPTTL is how long an issued verification or reset code stays valid.
	DefaultOTPTTL = 10 * time.Minute

	// DefaultOTPRetention is how long an expired code is kept before housekeeping
	// clears it. Until then it still reports ErrOTPExpired.
	DefaultOTPRetention = 24 * time.Hour
)

// Clock returns the current time. A nil Clock means time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultOTPTTL
	}
	return ttl
}
