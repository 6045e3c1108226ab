package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/passgate/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrConflict means a conditional update matched no row because the
	// state it depended on changed underneath it.
	ErrConflict = errors.New("store: conflict")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories so transactions stay explicit and nested
// transactions are impossible.
type Store interface {
	Accounts() Accounts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail matches the stored email exactly.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount inserts a new account. ErrAlreadyExists on duplicate email.
	CreateAccount(ctx context.Context, a domain.Account) error

	// SetVerifyOTP overwrites any pending verification code. Only unverified
	// accounts are touched; a verified or missing account yields ErrConflict.
	SetVerifyOTP(ctx context.Context, id, hash string, expiresAt, now time.Time) error

	// ConsumeVerifyOTP marks the account verified and clears the code, provided
	// the stored hash still equals expectedHash. Otherwise ErrConflict.
	ConsumeVerifyOTP(ctx context.Context, id, expectedHash string, now time.Time) error

	// SetResetOTP overwrites any pending reset code.
	SetResetOTP(ctx context.Context, id, hash string, expiresAt, now time.Time) error

	// ConsumeResetOTP replaces the password hash and clears the reset code,
	// provided the stored reset hash still equals expectedHash. Otherwise ErrConflict.
	ConsumeResetOTP(ctx context.Context, id, expectedHash, newPasswordHash string, now time.Time) error

	// ClearExpiredOTPs drops codes that expired before the cutoff and returns
	// how many code slots were cleared.
	ClearExpiredOTPs(ctx context.Context, before, now time.Time) (int64, error)
}
