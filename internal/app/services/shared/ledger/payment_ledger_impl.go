package ledger

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/utils"
	"context"
	"time"

	"go.uber.org/zap"
)

type paymentLedger struct {
	PaymentRepository contracts.PaymentRepository
	PatientRepository contracts.PatientRepository
	Transaction       contracts.TransactionManager
	Publisher         contracts.PaymentEventPublisher
	Log               *zap.Logger
	Now               func() time.Time
}

func NewPaymentLedger(
	paymentRepository contracts.PaymentRepository,
	patientRepository contracts.PatientRepository,
	transaction contracts.TransactionManager,
	publisher contracts.PaymentEventPublisher,
	logger *zap.Logger,
) contracts.PaymentLedger {
	return &paymentLedger{
		PaymentRepository: paymentRepository,
		PatientRepository: patientRepository,
		Transaction:       transaction,
		Publisher:         publisher,
		Log:               logger,
		Now:               time.Now,
	}
}

// Record inserts payment and appends its reference to the owning patient as one
// unit of work, then announces payment.created. A failed announcement is logged
// only; the stored payment stays authoritative.
func (l *paymentLedger) Record(ctx context.Context, payment *models.Payment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	l.Log.Info("paymentLedger.Record called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, payment.Patient.Hex()),
		zap.String(constvars.LoggingPaymentMethodKey, payment.PaymentMethod),
	)

	payment.Touch(l.Now())

	err := l.Transaction.WithTransaction(ctx, func(txCtx context.Context) error {
		paymentID, err := l.PaymentRepository.CreatePayment(txCtx, payment)
		if err != nil {
			return err
		}

		_, err = l.PatientRepository.AddPaymentReference(txCtx, payment.Patient.Hex(), paymentID)
		return err
	})
	if err != nil {
		l.Log.Error("paymentLedger.Record error recording payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	event := utils.BuildPaymentEvent(constvars.EventPaymentCreated, payment, l.Now())
	if err := l.Publisher.PublishPaymentEvent(ctx, event); err != nil {
		l.Log.Warn("paymentLedger.Record error publishing payment event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, payment.ID.Hex()),
			zap.Error(err),
		)
	}

	l.Log.Info("paymentLedger.Record succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID.Hex()),
		zap.String(constvars.LoggingTransactionIDKey, payment.TransactionID),
	)
	return nil
}

// Reconcile re-appends the patient reference of every payment created since the
// given time. Appends are idempotent, so only missing references count as repaired.
func (l *paymentLedger) Reconcile(ctx context.Context, since time.Time) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	l.Log.Info("paymentLedger.Reconcile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Time("since", since),
	)

	payments, err := l.PaymentRepository.FindCreatedSince(ctx, since)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, payment := range payments {
		added, err := l.PatientRepository.AddPaymentReference(ctx, payment.Patient.Hex(), payment.ID.Hex())
		if err != nil {
			l.Log.Error("paymentLedger.Reconcile error repairing reference",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentIDKey, payment.ID.Hex()),
				zap.Error(err),
			)
			return repaired, err
		}
		if added {
			repaired++
			l.Log.Warn("paymentLedger.Reconcile repaired orphaned payment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentIDKey, payment.ID.Hex()),
				zap.String(constvars.LoggingPatientIDKey, payment.Patient.Hex()),
			)
		}
	}

	l.Log.Info("paymentLedger.Reconcile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(payments)),
		zap.Int(constvars.LoggingRepairedCountKey, repaired),
	)
	return repaired, nil
}
