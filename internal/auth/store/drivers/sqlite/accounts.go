package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/passgate/internal/auth/domain"
	"github.com/aussiebroadwan/passgate/internal/auth/store"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, name, email, password_hash, role, avatar_url, is_verified,
	verify_otp_hash, verify_otp_expires_at, reset_otp_hash, reset_otp_expires_at,
	created_at, updated_at`

const getAccountByID = `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	return r.getOne(ctx, getAccountByID, id)
}

const getAccountByEmail = `SELECT ` + accountColumns + ` FROM accounts WHERE email = ?`

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.getOne(ctx, getAccountByEmail, email)
}

func (r *accountsRepo) getOne(ctx context.Context, query string, arg string) (domain.Account, error) {
	var (
		a                    domain.Account
		verifyExp, resetExp  int64
		createdAt, updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.AvatarURL, &a.IsVerified,
		&a.VerifyOTPHash, &verifyExp, &a.ResetOTPHash, &resetExp,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.VerifyOTPExpiresAt = fromMillis(verifyExp)
	a.ResetOTPExpiresAt = fromMillis(resetExp)
	a.CreatedAt = fromMillis(createdAt)
	a.UpdatedAt = fromMillis(updatedAt)
	return a, nil
}

const createAccount = `INSERT INTO accounts (` + accountColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx, createAccount,
		a.ID, a.Name, a.Email, a.PasswordHash, a.Role, a.AvatarURL, a.IsVerified,
		a.VerifyOTPHash, toMillis(a.VerifyOTPExpiresAt), a.ResetOTPHash, toMillis(a.ResetOTPExpiresAt),
		toMillis(a.CreatedAt), toMillis(a.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

const setVerifyOTP = `UPDATE accounts
SET verify_otp_hash = ?, verify_otp_expires_at = ?, updated_at = ?
WHERE id = ? AND is_verified = 0`

func (r *accountsRepo) SetVerifyOTP(ctx context.Context, id, hash string, expiresAt, now time.Time) error {
	return r.execOne(ctx, setVerifyOTP, hash, toMillis(expiresAt), toMillis(now), id)
}

const consumeVerifyOTP = `UPDATE accounts
SET is_verified = 1, verify_otp_hash = '', verify_otp_expires_at = 0, updated_at = ?
WHERE id = ? AND is_verified = 0 AND verify_otp_hash = ?`

func (r *accountsRepo) ConsumeVerifyOTP(ctx context.Context, id, expectedHash string, now time.Time) error {
	return r.execOne(ctx, consumeVerifyOTP, toMillis(now), id, expectedHash)
}

const setResetOTP = `UPDATE accounts
SET reset_otp_hash = ?, reset_otp_expires_at = ?, updated_at = ?
WHERE id = ?`

func (r *accountsRepo) SetResetOTP(ctx context.Context, id, hash string, expiresAt, now time.Time) error {
	return r.execOne(ctx, setResetOTP, hash, toMillis(expiresAt), toMillis(now), id)
}

const consumeResetOTP = `UPDATE accounts
SET password_hash = ?, reset_otp_hash = '', reset_otp_expires_at = 0, updated_at = ?
WHERE id = ? AND reset_otp_hash = ?`

func (r *accountsRepo) ConsumeResetOTP(ctx context.Context, id, expectedHash, newPasswordHash string, now time.Time) error {
	return r.execOne(ctx, consumeResetOTP, newPasswordHash, toMillis(now), id, expectedHash)
}

const clearExpiredVerifyOTPs = `UPDATE accounts
SET verify_otp_hash = '', verify_otp_expires_at = 0, updated_at = ?
WHERE verify_otp_hash <> '' AND verify_otp_expires_at < ?`

const clearExpiredResetOTPs = `UPDATE accounts
SET reset_otp_hash = '', reset_otp_expires_at = 0, updated_at = ?
WHERE reset_otp_hash <> '' AND reset_otp_expires_at < ?`

func (r *accountsRepo) ClearExpiredOTPs(ctx context.Context, before, now time.Time) (int64, error) {
	var total int64
	for _, q := range []string{clearExpiredVerifyOTPs, clearExpiredResetOTPs} {
		res, err := r.db.ExecContext(ctx, q, toMillis(now), toMillis(before))
		if err != nil {
			return total, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// execOne runs a conditional update that must touch exactly one row.
func (r *accountsRepo) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}
