package service_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/aussiebroadwan/passgate/internal/auth/service"
	"github.com/aussiebroadwan/passgate/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var bodyCodeRe = regexp.MustCompile(`<b>(\d{6})</b>`)

func codeFromBody(body string) (string, bool) {
	m := bodyCodeRe.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func TestSession_IssueAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)

	sess, err := env.sessions.Issue("acct-1")
	require.NoError(t, err)
	require.Equal(t, "acct-1", sess.AccountID)
	require.Equal(t, env.clock.Now().Add(24*time.Hour), sess.ExpiresAt)

	id, err := env.sessions.Authenticate(sess.Token)
	require.NoError(t, err)
	require.Equal(t, "acct-1", id)
}

func TestSession_Expires(t *testing.T) {
	env := newTestEnv(t)

	sess, err := env.sessions.Issue("acct-1")
	require.NoError(t, err)

	env.clock.Advance(24*time.Hour + time.Minute)
	_, err = env.sessions.Authenticate(sess.Token)
	require.ErrorIs(t, err, service.ErrInvalidSession)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestSession_RejectsForeignTokens(t *testing.T) {
	env := newTestEnv(t)

	other, err := jwtx.NewSignerHS256([]byte("some-other-secret"))
	require.NoError(t, err)
	foreign := service.NewSessionService(other, "passgate-test", time.Hour, env.clock.Now)
	sess, err := foreign.Issue("acct-1")
	require.NoError(t, err)

	_, err = env.sessions.Authenticate(sess.Token)
	require.ErrorIs(t, err, service.ErrInvalidSession)

	_, err = env.sessions.Authenticate("not-a-token")
	require.ErrorIs(t, err, service.ErrInvalidSession)
}
