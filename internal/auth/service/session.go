package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/passgate/internal/auth/domain"
	"github.com/aussiebroadwan/passgate/pkg/jwtx"
)

// SessionService mints and checks session tokens. Tokens carry only the
// account id. There is no server-side revocation: a token stays valid until
// it expires even after the cookie is cleared.
type SessionService struct {
	signer   jwtx.Signer
	verifier jwtx.Verifier
	issuer   string
	ttl      time.Duration
	clock    Clock
}

func NewSessionService(signer jwtx.Signer, issuer string, ttl time.Duration, clock Clock) *SessionService {
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	return &SessionService{
		signer: signer,
		verifier: signer.Verifier(jwtx.VerifyOptions{
			Issuer: issuer,
			Leeway: 5 * time.Second,
			Now:    clock.now,
		}),
		issuer: issuer,
		ttl:    ttl,
		clock:  clock,
	}
}

// Issue signs a session for the account.
func (s *SessionService) Issue(accountID string) (domain.Session, error) {
	claims := jwtx.NewSessionClaims(accountID, s.issuer, s.ttl, s.clock.now())
	token, err := s.signer.Sign(claims)
	if err != nil {
		return domain.Session{}, fmt.Errorf("sign session: %w", err)
	}
	return domain.Session{
		AccountID: accountID,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Authenticate returns the account id bound to a valid token.
func (s *SessionService) Authenticate(token string) (string, error) {
	claims, err := s.verifier.Verify(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return claims.Subject, nil
}

// Verifier exposes the token verifier for HTTP middleware.
func (s *SessionService) Verifier() jwtx.Verifier { return s.verifier }

// TTL is the lifetime of issued sessions.
func (s *SessionService) TTL() time.Duration { return s.ttl }
