package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	otpMin = 100000
	otpMax = 999999
)

// GenerateOTP draws a six digit code uniformly from [100000, 999999] and
// returns it with its Argon2id hash. Only the hash may be persisted.
func GenerateOTP() (code string, hash string, err error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate otp: %w", err)
	}
	code = fmt.Sprintf("%06d", n.Int64()+otpMin)

	hash, err = HashPassword(code)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash otp: %w", err)
	}
	return code, hash, nil
}

// VerifyOTP checks a submitted code against a stored OTP hash.
func VerifyOTP(code, hash string) error {
	return VerifyPassword(code, hash)
}
