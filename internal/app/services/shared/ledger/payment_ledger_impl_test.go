package ledger

import (
	"clinic-service/internal/app/contracts/mocks"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ledgerFixture struct {
	payments  *mocks.PaymentRepository
	patients  *mocks.PatientRepository
	tx        *mocks.TransactionManager
	publisher *mocks.PaymentEventPublisher
	ledger    *paymentLedger
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		payments:  new(mocks.PaymentRepository),
		patients:  new(mocks.PatientRepository),
		tx:        new(mocks.TransactionManager),
		publisher: new(mocks.PaymentEventPublisher),
	}
	f.ledger = &paymentLedger{
		PaymentRepository: f.payments,
		PatientRepository: f.patients,
		Transaction:       f.tx,
		Publisher:         f.publisher,
		Log:               zap.NewNop(),
		Now: func() time.Time {
			return time.Date(2024, 3, 9, 7, 0, 0, 0, time.UTC)
		},
	}
	return f
}

func TestPaymentLedger_Record(t *testing.T) {
	f := newLedgerFixture()
	patientID := primitive.NewObjectID()
	paymentID := primitive.NewObjectID()
	payment := &models.Payment{Patient: patientID, Amount: 500, PaymentMethod: constvars.PaymentMethodCash, Status: models.PaymentCompleted}

	f.tx.On("WithTransaction", mock.Anything).Return(nil)
	f.payments.On("CreatePayment", mock.Anything, payment).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Payment).ID = paymentID
	}).Return(paymentID.Hex(), nil)
	f.patients.On("AddPaymentReference", mock.Anything, patientID.Hex(), paymentID.Hex()).Return(true, nil)
	f.publisher.On("PublishPaymentEvent", mock.Anything, mock.MatchedBy(func(event *requests.PaymentEvent) bool {
		return event.EventType == constvars.EventPaymentCreated && event.PaymentID == paymentID.Hex()
	})).Return(nil)

	err := f.ledger.Record(context.Background(), payment)

	require.NoError(t, err)
	assert.False(t, payment.CreatedAt.IsZero())
	f.tx.AssertExpectations(t)
	f.payments.AssertExpectations(t)
	f.patients.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestPaymentLedger_Record_InsertFailureSkipsReference(t *testing.T) {
	f := newLedgerFixture()
	payment := &models.Payment{Patient: primitive.NewObjectID()}

	f.tx.On("WithTransaction", mock.Anything).Return(nil)
	f.payments.On("CreatePayment", mock.Anything, payment).Return("", errors.New("duplicate key"))

	err := f.ledger.Record(context.Background(), payment)

	assert.Error(t, err)
	f.patients.AssertNotCalled(t, "AddPaymentReference", mock.Anything, mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishPaymentEvent", mock.Anything, mock.Anything)
}

func TestPaymentLedger_Record_PublishFailureIsNotFatal(t *testing.T) {
	f := newLedgerFixture()
	payment := &models.Payment{Patient: primitive.NewObjectID()}

	f.tx.On("WithTransaction", mock.Anything).Return(nil)
	f.payments.On("CreatePayment", mock.Anything, payment).Return(primitive.NewObjectID().Hex(), nil)
	f.patients.On("AddPaymentReference", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	f.publisher.On("PublishPaymentEvent", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	assert.NoError(t, f.ledger.Record(context.Background(), payment))
}

func TestPaymentLedger_Reconcile_CountsOnlyMissingReferences(t *testing.T) {
	f := newLedgerFixture()
	since := time.Date(2024, 3, 8, 7, 0, 0, 0, time.UTC)
	linked := models.Payment{ID: primitive.NewObjectID(), Patient: primitive.NewObjectID()}
	orphan := models.Payment{ID: primitive.NewObjectID(), Patient: primitive.NewObjectID()}

	f.payments.On("FindCreatedSince", mock.Anything, since).Return([]models.Payment{linked, orphan}, nil)
	f.patients.On("AddPaymentReference", mock.Anything, linked.Patient.Hex(), linked.ID.Hex()).Return(false, nil)
	f.patients.On("AddPaymentReference", mock.Anything, orphan.Patient.Hex(), orphan.ID.Hex()).Return(true, nil)

	repaired, err := f.ledger.Reconcile(context.Background(), since)

	require.NoError(t, err)
	assert.Equal(t, 1, repaired)
	f.patients.AssertExpectations(t)
}

func TestPaymentLedger_Reconcile_StopsOnError(t *testing.T) {
	f := newLedgerFixture()
	payment := models.Payment{ID: primitive.NewObjectID(), Patient: primitive.NewObjectID()}

	f.payments.On("FindCreatedSince", mock.Anything, mock.Anything).Return([]models.Payment{payment}, nil)
	f.patients.On("AddPaymentReference", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("timeout"))

	repaired, err := f.ledger.Reconcile(context.Background(), time.Now())

	assert.Error(t, err)
	assert.Zero(t, repaired)
}
