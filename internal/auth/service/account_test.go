package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/passgate/internal/auth/domain"
	"github.com/aussiebroadwan/passgate/internal/auth/service"
	"github.com/aussiebroadwan/passgate/pkg/idx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memAvatars keeps uploads in memory. onUpload runs after a successful upload.
type memAvatars struct {
	mu       sync.Mutex
	objects  map[string]bool
	deleted  []string
	onUpload func()
}

func (m *memAvatars) Upload(_ context.Context, _ string, body io.Reader, _ int64) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	m.mu.Lock()
	if m.objects == nil {
		m.objects = map[string]bool{}
	}
	url := "https://cdn.example.com/avatars/" + idx.New().String() + ".png"
	m.objects[url] = true
	m.mu.Unlock()

	if m.onUpload != nil {
		m.onUpload()
	}
	return url, nil
}

func (m *memAvatars) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, url)
	m.deleted = append(m.deleted, url)
	return nil
}

func (m *memAvatars) stored() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

func pngUpload() *service.AvatarUpload {
	return &service.AvatarUpload{ContentType: "image/png", Body: bytes.NewReader([]byte("png")), Size: 3}
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.accounts.Register(ctx, service.RegisterInput{
		Name:     "  Alice  ",
		Email:    " alice@example.com ",
		Password: "hunter22",
		Role:     "member",
	})
	require.NoError(t, err)
	require.NoError(t, res.NotifyErr)

	acct := res.Account
	_, err = idx.Parse(acct.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", acct.Name)
	require.Equal(t, "alice@example.com", acct.Email)
	require.False(t, acct.IsVerified)
	require.NotEqual(t, "hunter22", acct.PasswordHash)

	id, err := env.sessions.Authenticate(res.Session.Token)
	require.NoError(t, err)
	require.Equal(t, acct.ID, id)

	msgs := env.mail.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "alice@example.com", msgs[0].To)
	require.Equal(t, "Welcome to passgate", msgs[0].Subject)
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for name, in := range map[string]service.RegisterInput{
		"no name":     {Email: "a@example.com", Password: "p", Role: "member"},
		"no email":    {Name: "A", Password: "p", Role: "member"},
		"no password": {Name: "A", Email: "a@example.com", Role: "member"},
		"no role":     {Name: "A", Email: "a@example.com", Password: "p"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := env.accounts.Register(ctx, in)
			require.ErrorIs(t, err, service.ErrMissingField)
		})
	}

	for _, email := range []string{
		"not-an-email",
		"Mallory <bob@example.com>",
		"<bob@example.com>",
		`"Bob" <bob@example.com>`,
	} {
		_, err := env.accounts.Register(ctx, service.RegisterInput{Name: "A", Email: email, Password: "p", Role: "member"})
		require.ErrorIs(t, err, service.ErrInvalidEmail, email)
	}
}

func TestRegister_DisplayNameCannotDuplicateMailbox(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.accounts.Register(ctx, service.RegisterInput{
		Name: "Mallory", Email: "Mallory <bob@example.com>", Password: "p", Role: "member",
	})
	require.ErrorIs(t, err, service.ErrInvalidEmail)

	acct := env.register(t, "Bob", "bob@example.com", "hunter22")
	require.Equal(t, "bob@example.com", acct.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@example.com", "hunter22")

	_, err := env.accounts.Register(context.Background(), service.RegisterInput{
		Name: "Other", Email: "alice@example.com", Password: "x", Role: "member",
	})
	require.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestRegister_WelcomeMailFailureStillCreatesAccount(t *testing.T) {
	env := newTestEnv(t)
	boom := errors.New("relay down")
	env.mail.SetErr(boom)

	res, err := env.accounts.Register(context.Background(), service.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22", Role: "member",
	})
	require.NoError(t, err)
	require.ErrorIs(t, res.NotifyErr, boom)

	_, err = env.accounts.Me(context.Background(), res.Account.ID)
	require.NoError(t, err)
}

func TestRegister_AvatarDisabled(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.accounts.Register(context.Background(), service.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22", Role: "member",
		Avatar: &service.AvatarUpload{ContentType: "image/png", Body: bytes.NewReader([]byte{1}), Size: 1},
	})
	require.ErrorIs(t, err, service.ErrInvalidAvatar)

	_, err = env.accounts.Login(context.Background(), "alice@example.com", "hunter22")
	require.ErrorIs(t, err, service.ErrInvalidCredentials, "no account is created when the avatar is rejected")
}

func TestRegister_AvatarStored(t *testing.T) {
	env := newTestEnv(t)
	avatars := &memAvatars{}
	env.accounts.Avatars = avatars

	res, err := env.accounts.Register(context.Background(), service.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22", Role: "member",
		Avatar: pngUpload(),
	})
	require.NoError(t, err)
	require.Contains(t, res.Account.AvatarURL, "https://cdn.example.com/avatars/")
	require.Equal(t, 1, avatars.stored())
	require.Empty(t, avatars.deleted)
}

func TestRegister_LostEmailRaceDeletesAvatar(t *testing.T) {
	env := newTestEnv(t)
	avatars := &memAvatars{}
	env.accounts.Avatars = avatars

	// Another registration for the same email commits while the upload runs.
	avatars.onUpload = func() {
		now := time.Now().UTC()
		require.NoError(t, env.store.Accounts().CreateAccount(context.Background(), domain.Account{
			ID: idx.New().String(), Name: "Racer", Email: "alice@example.com",
			PasswordHash: "x", Role: "member", CreatedAt: now, UpdatedAt: now,
		}))
	}

	_, err := env.accounts.Register(context.Background(), service.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22", Role: "member",
		Avatar: pngUpload(),
	})
	require.ErrorIs(t, err, service.ErrEmailTaken)
	require.Len(t, avatars.deleted, 1)
	require.Zero(t, avatars.stored())
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	env := newFileTestEnv(t)
	ctx := context.Background()

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.accounts.Register(ctx, service.RegisterInput{
				Name: "Alice", Email: "alice@example.com", Password: "hunter22", Role: "member",
			})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, service.ErrEmailTaken)
		}()
	}
	wg.Wait()
	require.Equal(t, 1, created)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acct := env.register(t, "Alice", "alice@example.com", "hunter22")

	sess, err := env.accounts.Login(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, acct.ID, sess.AccountID)
	require.Equal(t, env.clock.Now().Add(env.sessions.TTL()), sess.ExpiresAt)

	_, err = env.accounts.Login(ctx, "alice@example.com", "wrong")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	burned := service.BurnedChecks()
	_, err = env.accounts.Login(ctx, "nobody@example.com", "hunter22")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
	require.Equal(t, burned+1, service.BurnedChecks(), "unknown email still pays for a hash check")

	_, err = env.accounts.Login(ctx, "", "hunter22")
	require.ErrorIs(t, err, service.ErrMissingField)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	acct := env.register(t, "Alice", "alice@example.com", "hunter22")

	got, err := env.accounts.Me(context.Background(), acct.ID)
	require.NoError(t, err)
	require.Equal(t, acct.Email, got.Email)

	_, err = env.accounts.Me(context.Background(), idx.New().String())
	require.ErrorIs(t, err, service.ErrAccountNotFound)
}
