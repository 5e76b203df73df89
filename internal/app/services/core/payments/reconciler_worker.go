package payments

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultReconcilerCronSpec = "@daily"
	defaultReconcilerLockTTL  = 2 * time.Minute
)

// ReconcilerWorker periodically re-adds payment references missing from patients.
// Only the instance holding the leader lock runs a pass.
type ReconcilerWorker struct {
	log    *zap.Logger
	cfg    config.AppReconciler
	locker contracts.LockerService
	ledger contracts.PaymentLedger
	now    func() time.Time
	// fallbackSpec is scheduled when the configured spec does not parse.
	fallbackSpec string
	cron         *cron.Cron
	runCtx       context.Context
	cancel       context.CancelFunc
}

func NewReconcilerWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, paymentLedger contracts.PaymentLedger) *ReconcilerWorker {
	return &ReconcilerWorker{
		log:          log,
		cfg:          cfg.Reconciler,
		locker:       lockerSvc,
		ledger:       paymentLedger,
		now:          time.Now,
		fallbackSpec: defaultReconcilerCronSpec,
	}
}

func (w *ReconcilerWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	_, err := c.AddFunc(w.cfg.CronSpec, func() { w.RunOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("payments.reconciler: invalid cron spec; falling back",
			zap.String("cron_spec", w.cfg.CronSpec),
			zap.String("fallback_spec", w.fallbackSpec),
			zap.Error(err),
		)
		c = cron.New()
		_, err = c.AddFunc(w.fallbackSpec, func() { w.RunOnce(w.runCtx) })
		if err != nil {
			w.log.Error("payments.reconciler: fallback cron spec rejected; reconciler not scheduled",
				zap.String("cron_spec", w.fallbackSpec),
				zap.Error(err),
			)
		}
	}
	c.Start()
	w.cron = c
}

// Stop waits for an in-flight pass to finish.
func (w *ReconcilerWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

// RunOnce performs a single pass and returns the number of repaired references.
func (w *ReconcilerWorker) RunOnce(ctx context.Context) int {
	ttl := w.lockTTL()
	acquired, token, err := w.locker.TryLock(ctx, constvars.ReconcilerLockKey, ttl)
	if err != nil {
		w.log.Warn("payments.reconciler: leader lock attempt failed", zap.Error(err))
		return 0
	}
	if !acquired {
		w.log.Info("payments.reconciler: leader lock held by another instance")
		return 0
	}
	defer func() {
		if err := w.locker.Unlock(context.WithoutCancel(ctx), constvars.ReconcilerLockKey, token); err != nil {
			w.log.Warn("payments.reconciler: failed to release leader lock", zap.Error(err))
		}
	}()

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(refreshCtx, constvars.ReconcilerLockKey, token, ttl); err != nil {
					w.log.Warn("payments.reconciler: failed to refresh leader lock", zap.Error(err))
				}
			}
		}
	}()

	since := w.now().Add(-time.Duration(w.cfg.LookbackHours) * time.Hour)
	repaired, err := w.ledger.Reconcile(ctx, since)
	if err != nil {
		w.log.Error("payments.reconciler: pass failed",
			zap.Time("since", since),
			zap.Int(constvars.LoggingRepairedCountKey, repaired),
			zap.Error(err),
		)
		return repaired
	}

	w.log.Info("payments.reconciler: pass finished",
		zap.Time("since", since),
		zap.Int(constvars.LoggingRepairedCountKey, repaired),
	)
	return repaired
}

func (w *ReconcilerWorker) lockTTL() time.Duration {
	if w.cfg.LockExpirationInSeconds <= 0 {
		return defaultReconcilerLockTTL
	}
	return time.Duration(w.cfg.LockExpirationInSeconds) * time.Second
}
