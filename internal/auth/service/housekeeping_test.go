package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/passgate/internal/auth/service"
	"github.com/aussiebroadwan/passgate/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestHousekeeping_RunOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	stale := env.register(t, "Alice", "alice@example.com", "pw")
	require.NoError(t, env.verify.IssueOTP(ctx, stale.ID))
	require.NoError(t, env.reset.RequestReset(ctx, "alice@example.com"))

	env.clock.Advance(2 * time.Hour)

	fresh := env.register(t, "Bob", "bob@example.com", "pw")
	require.NoError(t, env.verify.IssueOTP(ctx, fresh.ID))

	hk := service.NewHousekeepingService(env.store, slogx.Discard(), time.Hour, time.Hour)
	hk.Clock = env.clock.Now

	n, err := hk.RunOnce(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	got := env.account(t, stale.ID)
	require.Empty(t, got.VerifyOTPHash)
	require.Empty(t, got.ResetOTPHash)
	require.NotEmpty(t, env.account(t, fresh.ID).VerifyOTPHash)

	// A cleared code reads as no code at all.
	require.ErrorIs(t, env.verify.Verify(ctx, stale.ID, "123456"), service.ErrNoOTPPending)
}

func TestHousekeeping_ExpiredCodeWithinRetentionStillReportsExpired(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	acct := env.register(t, "Alice", "alice@example.com", "pw")
	require.NoError(t, env.verify.IssueOTP(ctx, acct.ID))
	env.clock.Advance(30 * time.Minute)

	hk := service.NewHousekeepingService(env.store, slogx.Discard(), time.Hour, 0)
	hk.Clock = env.clock.Now
	n, err := hk.RunOnce(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	require.ErrorIs(t, env.verify.Verify(ctx, acct.ID, "123456"), service.ErrOTPExpired)
}

func TestHousekeeping_StartStop(t *testing.T) {
	env := newTestEnv(t)
	hk := service.NewHousekeepingService(env.store, slogx.Discard(), time.Hour, time.Hour)
	hk.Start()
	hk.Stop()
}
