package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/passgate/pkg/cryptox"
	"github.com/aussiebroadwan/passgate/pkg/jwtx"
)

// NewSessionSigner builds the session signer for the configured algorithm.
//
// Outside production a missing secret or key file is replaced by an
// ephemeral one, so every restart signs everyone out.
func NewSessionSigner(cfg Config, logger *slog.Logger) (jwtx.Signer, error) {
	switch cfg.SessionAlgorithm {
	case AlgHS256:
		secret := []byte(cfg.JWTSecret)
		if len(secret) == 0 {
			tok, err := cryptox.GenerateToken(cryptox.TokenSize256)
			if err != nil {
				return nil, fmt.Errorf("generate ephemeral secret: %w", err)
			}
			secret = []byte(tok)
			logger.Warn("JWT_SECRET not set, using an ephemeral session secret")
		}
		signer, err := jwtx.NewSignerHS256(secret)
		if err != nil {
			return nil, err
		}
		return signer, nil

	case AlgEdDSA:
		var (
			pemKey []byte
			err    error
		)
		if cfg.SigningKeyFile != "" {
			pemKey, err = readFileTrimmed(cfg.SigningKeyFile)
			if err != nil {
				return nil, fmt.Errorf("read signing key: %w", err)
			}
		} else {
			pemKey, err = jwtx.GenerateEd25519Key()
			if err != nil {
				return nil, err
			}
			logger.Warn("AUTH_SIGNING_KEY_FILE not set, using an ephemeral Ed25519 key")
		}
		signer, err := jwtx.NewSignerEdDSA(pemKey)
		if err != nil {
			return nil, err
		}
		return signer, nil

	default:
		return nil, fmt.Errorf("unsupported session algorithm %q", cfg.SessionAlgorithm)
	}
}
