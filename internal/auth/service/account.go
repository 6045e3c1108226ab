package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/aussiebroadwan/passgate/internal/auth/avatar"
	"github.com/aussiebroadwan/passgate/internal/auth/domain"
	"github.com/aussiebroadwan/passgate/internal/auth/notify"
	"github.com/aussiebroadwan/passgate/internal/auth/store"
	"github.com/aussiebroadwan/passgate/pkg/cryptox"
	"github.com/aussiebroadwan/passgate/pkg/idx"
	"github.com/aussiebroadwan/passgate/pkg/slogx"
)

type AccountService struct {
	Store    store.Store
	Sessions *SessionService
	Mailer   *notify.Mailer
	Avatars  avatar.Store
	Clock    Clock
}

// AvatarUpload is an optional image attached to a registration.
type AvatarUpload struct {
	ContentType string
	Body        io.Reader
	Size        int64
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Avatar   *AvatarUpload
}

// RegisterResult separates the committed account from the welcome mail.
// NotifyErr is set when the account exists but the mail could not be sent.
type RegisterResult struct {
	Account   domain.Account
	Session   domain.Session
	NotifyErr error
}

// Register creates an unverified account, signs it in and sends a welcome mail.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	l := slogx.FromContext(ctx)

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return RegisterResult{}, ErrMissingField
	}
	// Only a bare address is accepted; "Name <addr>" would store a second
	// spelling of an existing mailbox.
	addr, err := mail.ParseAddress(in.Email)
	if err != nil || addr.Address != in.Email {
		return RegisterResult{}, ErrInvalidEmail
	}

	_, err = s.Store.Accounts().GetAccountByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return RegisterResult{}, ErrEmailTaken
	case !errors.Is(err, store.ErrNotFound):
		return RegisterResult{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("hash password: %w", err)
	}

	var avatarURL string
	if in.Avatar != nil && s.Avatars != nil {
		avatarURL, err = s.Avatars.Upload(ctx, in.Avatar.ContentType, in.Avatar.Body, in.Avatar.Size)
		if err != nil {
			if errors.Is(err, avatar.ErrAvatarsDisabled) ||
				errors.Is(err, avatar.ErrUnsupportedAvatar) ||
				errors.Is(err, avatar.ErrAvatarTooLarge) {
				return RegisterResult{}, fmt.Errorf("%w: %v", ErrInvalidAvatar, err)
			}
			return RegisterResult{}, fmt.Errorf("upload avatar: %w", err)
		}
	}

	now := s.Clock.now()
	acct := domain.Account{
		ID:           idx.NewAt(now).String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		AvatarURL:    avatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique index settles races between concurrent registrations.
	if err := s.Store.Accounts().CreateAccount(ctx, acct); err != nil {
		if avatarURL != "" {
			if derr := s.Avatars.Delete(context.WithoutCancel(ctx), avatarURL); derr != nil {
				l.Warn("orphaned avatar left in storage", "url", avatarURL, "err", derr)
			}
		}
		if errors.Is(err, store.ErrAlreadyExists) {
			return RegisterResult{}, ErrEmailTaken
		}
		return RegisterResult{}, fmt.Errorf("create account: %w", err)
	}

	sess, err := s.Sessions.Issue(acct.ID)
	if err != nil {
		return RegisterResult{}, err
	}

	res := RegisterResult{Account: acct, Session: sess}
	if err := s.Mailer.SendWelcome(ctx, acct.Email, acct.Name); err != nil {
		res.NotifyErr = err
	}

	l.Info("account registered", "account_id", acct.ID)
	return res, nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
	burnedChecks  atomic.Int64
)

// burnPasswordCheck spends the same hashing work as a real check so unknown
// emails cannot be told apart by response time.
func burnPasswordCheck(secret string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = cryptox.HashPassword("passgate-dummy-password")
	})
	_ = cryptox.VerifyPassword(secret, dummyHash)
	burnedChecks.Add(1)
}

// Login checks the credentials and issues a session.
func (s *AccountService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Session{}, ErrMissingField
	}

	acct, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			burnPasswordCheck(password)
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, fmt.Errorf("load account: %w", err)
	}

	if err := cryptox.VerifyPassword(password, acct.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			l.Error("stored password hash unreadable", "account_id", acct.ID, "err", err)
		}
		return domain.Session{}, ErrInvalidCredentials
	}

	return s.Sessions.Issue(acct.ID)
}

// Me returns the account behind an authenticated session.
func (s *AccountService) Me(ctx context.Context, accountID string) (domain.Account, error) {
	if accountID == "" {
		return domain.Account{}, ErrMissingField
	}
	acct, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("load account: %w", err)
	}
	return acct, nil
}
