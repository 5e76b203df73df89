package payments

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts/mocks"
	"clinic-service/internal/pkg/constvars"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestReconciler(locker *mocks.LockerService, ledger *mocks.PaymentLedger) *ReconcilerWorker {
	cfg := &config.InternalConfig{Reconciler: config.AppReconciler{
		Enabled:                 true,
		CronSpec:                "@every 15m",
		LookbackHours:           6,
		LockExpirationInSeconds: 120,
	}}
	w := NewReconcilerWorker(zap.NewNop(), cfg, locker, ledger)
	w.now = func() time.Time { return fixedNow }
	return w
}

func TestReconcilerWorker_RunOnce(t *testing.T) {
	locker := new(mocks.LockerService)
	ledger := new(mocks.PaymentLedger)
	w := newTestReconciler(locker, ledger)

	locker.On("TryLock", mock.Anything, constvars.ReconcilerLockKey, 2*time.Minute).Return(true, "token-1", nil)
	locker.On("Unlock", mock.Anything, constvars.ReconcilerLockKey, "token-1").Return(nil)
	ledger.On("Reconcile", mock.Anything, fixedNow.Add(-6*time.Hour)).Return(2, nil)

	repaired := w.RunOnce(context.Background())

	assert.Equal(t, 2, repaired)
	locker.AssertExpectations(t)
	ledger.AssertExpectations(t)
}

func TestReconcilerWorker_RunOnce_LockHeldElsewhere(t *testing.T) {
	locker := new(mocks.LockerService)
	ledger := new(mocks.PaymentLedger)
	w := newTestReconciler(locker, ledger)

	locker.On("TryLock", mock.Anything, constvars.ReconcilerLockKey, mock.Anything).Return(false, "", nil)

	repaired := w.RunOnce(context.Background())

	assert.Zero(t, repaired)
	ledger.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
	locker.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcilerWorker_RunOnce_LockError(t *testing.T) {
	locker := new(mocks.LockerService)
	ledger := new(mocks.PaymentLedger)
	w := newTestReconciler(locker, ledger)

	locker.On("TryLock", mock.Anything, constvars.ReconcilerLockKey, mock.Anything).Return(false, "", errors.New("redis down"))

	assert.Zero(t, w.RunOnce(context.Background()))
	ledger.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
}

func TestReconcilerWorker_RunOnce_ReleasesLockOnFailure(t *testing.T) {
	locker := new(mocks.LockerService)
	ledger := new(mocks.PaymentLedger)
	w := newTestReconciler(locker, ledger)

	locker.On("TryLock", mock.Anything, constvars.ReconcilerLockKey, mock.Anything).Return(true, "token-2", nil)
	locker.On("Unlock", mock.Anything, constvars.ReconcilerLockKey, "token-2").Return(nil)
	ledger.On("Reconcile", mock.Anything, mock.Anything).Return(1, errors.New("mongo down"))

	assert.Equal(t, 1, w.RunOnce(context.Background()))
	locker.AssertExpectations(t)
}

func TestReconcilerWorker_StartWithInvalidSpecFallsBack(t *testing.T) {
	w := newTestReconciler(new(mocks.LockerService), new(mocks.PaymentLedger))
	w.cfg.CronSpec = "not a cron spec"

	w.Start(context.Background())
	defer w.Stop()

	assert.Len(t, w.cron.Entries(), 1)
}

func TestReconcilerWorker_StartWithInvalidFallbackLogsError(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := newTestReconciler(new(mocks.LockerService), new(mocks.PaymentLedger))
	w.log = zap.New(core)
	w.cfg.CronSpec = "not a cron spec"
	w.fallbackSpec = "also not a cron spec"

	w.Start(context.Background())
	defer w.Stop()

	assert.Empty(t, w.cron.Entries())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Equal(t, 1, logs.FilterMessage("payments.reconciler: fallback cron spec rejected; reconciler not scheduled").Len())
}
