package bootstrap

import (
	"context"
	"time"

	"github.com/bondifuzz/api-gateway/internal/auth"
	"github.com/bondifuzz/api-gateway/internal/launcher"
	"github.com/bondifuzz/api-gateway/internal/store/mongostore"
	"github.com/bondifuzz/api-gateway/pkg/mlog"
)

// SweeperApp periodically purges expired sessions and lockouts and prunes
// the in-memory failed-login window, the three pieces of state that decay
// on a timer rather than in response to a request (§4.1). There is no
// equivalent background job in the teacher, which leans on Postgres
// TTLs/cron for this instead of in-process sweeping — this one is grounded
// on the repositories' own DeleteExpired/RemoveExpired methods plus
// auth.FailedLoginCounter.Sweep, run on the BFP_CLEANUP_INTERVAL_SEC clock.
type SweeperApp struct {
	Sessions     *mongostore.SessionRepository
	Lockouts     *mongostore.LockoutRepository
	FailedLogins *auth.FailedLoginCounter
	Interval     time.Duration
	Logger       mlog.Logger
}

// Run sweeps every Interval until l.Context is cancelled.
func (s *SweeperApp) Run(l *launcher.Launcher) error {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.Context.Done():
			return nil
		case <-ticker.C:
			s.sweepOnce(l.Context)
		}
	}
}

func (s *SweeperApp) sweepOnce(ctx context.Context) {
	now := time.Now().UTC()

	if n, err := s.Sessions.DeleteExpired(ctx, now); err != nil {
		s.Logger.Warnf("sweeper: session cleanup failed: %v", err)
	} else if n > 0 {
		s.Logger.Infof("sweeper: purged %d expired session(s)", n)
	}

	if n, err := s.Lockouts.RemoveExpired(ctx, now); err != nil {
		s.Logger.Warnf("sweeper: lockout cleanup failed: %v", err)
	} else if n > 0 {
		s.Logger.Infof("sweeper: purged %d expired lockout(s)", n)
	}

	s.FailedLogins.Sweep()
}
