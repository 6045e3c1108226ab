package jwtx

import "github.com/golang-jwt/jwt/v5"

// Signer is our interface for anything that can sign session tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	// Verifier returns a verifier accepting tokens from this signer.
	Verifier(opts VerifyOptions) Verifier
}

func sign(method jwt.SigningMethod, key any, claims Claims) (string, error) {
	return jwt.NewWithClaims(method, claims).SignedString(key)
}
