package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/passgate/internal/auth/store"
)

// HousekeepingService periodically clears OTP hashes that expired long ago so
// dead codes do not linger in the accounts table.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration
	Clock     Clock

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to 1 hour and a non-positive retention to DefaultOTPRetention.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = DefaultOTPRetention
	}

	return &HousekeepingService{
		Store:     store,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop() to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "otp_retention", s.Retention)
}

// Stop shuts the worker down, waiting for any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.RunOnce(ctx)
	if err != nil {
		s.Logger.Error("failed to clear expired otps", "err", err)
		return
	}
	s.Logger.Info("housekeeping cleanup completed", "otps_cleared", n)
}

// RunOnce clears every OTP that expired more than Retention ago.
func (s *HousekeepingService) RunOnce(ctx context.Context) (int64, error) {
	now := s.Clock.now()
	cutoff := now.Add(-s.Retention)

	var cleared int64
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Accounts().ClearExpiredOTPs(ctx, cutoff, now)
		cleared = n
		return err
	})
	return cleared, err
}
