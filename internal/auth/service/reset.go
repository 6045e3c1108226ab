package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/passgate/internal/auth/notify"
	"github.com/aussiebroadwan/passgate/internal/auth/store"
	"github.com/aussiebroadwan/passgate/pkg/cryptox"
	"github.com/aussiebroadwan/passgate/pkg/slogx"
)

// ResetService drives the password reset flow.
type ResetService struct {
	Store  store.Store
	Mailer *notify.Mailer
	OTPTTL time.Duration
	Clock  Clock

	// ConcealAccountExistence makes unknown emails indistinguishable from
	// known ones: RequestReset reports success and ConsumeReset reports
	// ErrInvalidOTP.
	ConcealAccountExistence bool
}

// RequestReset issues a reset code for the email, replacing any pending one.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" {
		return ErrMissingField
	}

	acct, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			if s.ConcealAccountExistence {
				burnPasswordCheck(email)
				l.Info("reset requested for unknown email")
				return nil
			}
			return ErrAccountNotFound
		}
		return fmt.Errorf("load account: %w", err)
	}

	code, hash, err := cryptox.GenerateOTP()
	if err != nil {
		return err
	}

	ttl := ttlOrDefault(s.OTPTTL)
	now := s.Clock.now()
	if err := s.Store.Accounts().SetResetOTP(ctx, acct.ID, hash, now.Add(ttl), now); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("store reset otp: %w", err)
	}

	if err := s.Mailer.SendResetOTP(ctx, acct.Email, code, ttl); err != nil {
		return fmt.Errorf("send reset otp: %w", err)
	}

	l.Info("reset otp issued", "account_id", acct.ID)
	return nil
}

// ConsumeReset checks the code and rotates the password in one conditional
// update. A code works at most once.
func (s *ResetService) ConsumeReset(ctx context.Context, email, code, newPassword string) error {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" || newPassword == "" {
		return ErrMissingField
	}

	acct, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			if s.ConcealAccountExistence {
				burnPasswordCheck(code)
				return ErrInvalidOTP
			}
			return ErrAccountNotFound
		}
		return fmt.Errorf("load account: %w", err)
	}

	if acct.ResetOTPHash == "" {
		return ErrInvalidOTP
	}

	now := s.Clock.now()
	if !now.Before(acct.ResetOTPExpiresAt) {
		return ErrOTPExpired
	}

	if err := cryptox.VerifyOTP(code, acct.ResetOTPHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			l.Info("reset otp mismatch", "account_id", acct.ID)
			return ErrInvalidOTP
		}
		return fmt.Errorf("verify otp hash: %w", err)
	}

	newHash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.Store.Accounts().ConsumeResetOTP(ctx, acct.ID, acct.ResetOTPHash, newHash, now); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("consume reset otp: %w", err)
	}

	l.Info("password reset", "account_id", acct.ID)
	return nil
}
