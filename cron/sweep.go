package cron

import (
	"context"
	"fmt"
	"time"

	"motoslot/config"
	settlementRepo "motoslot/database/repository/settlement"

	cronlib "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Reconciler is the periodic sweep that reclaims slots and bookings whose
// payment window elapsed without settlement. It restores consistency
// independent of client behavior: an abandoned payment flow needs no client
// action to free its slot.
type Reconciler struct {
	Repo   settlementRepo.SettlementRepository
	Logger *zap.Logger
}

func NewReconciler(repo settlementRepo.SettlementRepository, logger *zap.Logger) *Reconciler {
	return &Reconciler{Repo: repo, Logger: logger}
}

// Run executes one reconciliation pass. Errors are operational only; the
// next interval retries.
func (r *Reconciler) Run(ctx context.Context) {
	res, err := r.Repo.ExpireStale(ctx, time.Now().UTC())
	if err != nil {
		r.Logger.Error("reconciliation sweep failed", zap.Error(err))
		return
	}
	if res.Total() > 0 {
		r.Logger.Info("reconciliation sweep reclaimed stale state",
			zap.Int("expiredBookings", res.ExpiredBookings),
			zap.Int("releasedLocks", res.ReleasedLocks),
		)
	}
}

// StartSweep schedules the reconciler on its configured interval and returns
// the scheduler so the caller can stop it on shutdown.
func StartSweep(ctx context.Context, r *Reconciler) *cronlib.Cron {
	c := cronlib.New()
	spec := fmt.Sprintf("@every %s", config.SweepInterval())
	if _, err := c.AddFunc(spec, func() { r.Run(ctx) }); err != nil {
		r.Logger.Fatal("failed to schedule reconciliation sweep", zap.Error(err))
	}
	c.Start()
	r.Logger.Info("reconciliation sweep scheduled", zap.String("interval", config.SweepInterval().String()))
	return c
}
