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

// VerificationService drives Unverified -> OTPPending -> Verified.
type VerificationService struct {
	Store  store.Store
	Mailer *notify.Mailer
	OTPTTL time.Duration
	Clock  Clock
}

// IssueOTP generates a fresh verification code, replacing any pending one,
// and mails it to the account. Calling it again simply re-issues.
func (s *VerificationService) IssueOTP(ctx context.Context, accountID string) error {
	l := slogx.FromContext(ctx)
	if accountID == "" {
		return ErrMissingField
	}

	acct, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("load account: %w", err)
	}
	if acct.IsVerified {
		return ErrAlreadyVerified
	}

	code, hash, err := cryptox.GenerateOTP()
	if err != nil {
		return err
	}

	ttl := ttlOrDefault(s.OTPTTL)
	now := s.Clock.now()
	if err := s.Store.Accounts().SetVerifyOTP(ctx, acct.ID, hash, now.Add(ttl), now); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Verified between the read and the write.
			return ErrAlreadyVerified
		}
		return fmt.Errorf("store verify otp: %w", err)
	}

	if err := s.Mailer.SendVerifyOTP(ctx, acct.Email, code, ttl); err != nil {
		return fmt.Errorf("send verify otp: %w", err)
	}

	l.Info("verification otp issued", "account_id", acct.ID)
	return nil
}

// Verify consumes the pending verification code. The checks run in a fixed
// order so callers always see the most specific failure.
func (s *VerificationService) Verify(ctx context.Context, accountID, code string) error {
	l := slogx.FromContext(ctx)

	code = strings.TrimSpace(code)
	if accountID == "" || code == "" {
		return ErrMissingField
	}

	acct, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("load account: %w", err)
	}

	switch {
	case acct.IsVerified:
		return ErrAlreadyVerified
	case acct.VerifyOTPHash == "":
		return ErrNoOTPPending
	}

	now := s.Clock.now()
	if !now.Before(acct.VerifyOTPExpiresAt) {
		return ErrOTPExpired
	}

	if err := cryptox.VerifyOTP(code, acct.VerifyOTPHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			l.Info("verification otp mismatch", "account_id", acct.ID)
			return ErrInvalidOTP
		}
		return fmt.Errorf("verify otp hash: %w", err)
	}

	// Only succeeds if nobody re-issued or consumed the code meanwhile.
	if err := s.Store.Accounts().ConsumeVerifyOTP(ctx, acct.ID, acct.VerifyOTPHash, now); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("consume verify otp: %w", err)
	}

	l.Info("account verified", "account_id", acct.ID)
	return nil
}
