package payments

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts/mocks"
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/shared/ratelimiter"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 3, 9, 7, 0, 0, 0, time.UTC)

type paymentFixture struct {
	patients  *mocks.PatientRepository
	payments  *mocks.PaymentRepository
	ledger    *mocks.PaymentLedger
	gateway   *mocks.MobileMoneyGateway
	publisher *mocks.PaymentEventPublisher
	insurance *mocks.InsuranceUsecase
	redis     *mocks.RedisRepository
	usecase   *paymentUsecase
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		patients:  new(mocks.PatientRepository),
		payments:  new(mocks.PaymentRepository),
		ledger:    new(mocks.PaymentLedger),
		gateway:   new(mocks.MobileMoneyGateway),
		publisher: new(mocks.PaymentEventPublisher),
		insurance: new(mocks.InsuranceUsecase),
		redis:     new(mocks.RedisRepository),
	}
	internalConfig := &config.InternalConfig{Mpesa: config.AppMpesa{PhoneSTKPushLimitPerMinute: 3}}
	f.usecase = &paymentUsecase{
		PatientRepository: f.patients,
		PaymentRepository: f.payments,
		PaymentLedger:     f.ledger,
		Gateway:           f.gateway,
		Publisher:         f.publisher,
		InsuranceUsecase:  f.insurance,
		PhoneLimiter:      ratelimiter.NewResourceLimiter(f.redis, zap.NewNop()),
		InternalConfig:    internalConfig,
		Log:               zap.NewNop(),
		Now:               func() time.Time { return fixedNow },
	}
	return f
}

func (f *paymentFixture) assertExpectations(t *testing.T) {
	f.patients.AssertExpectations(t)
	f.payments.AssertExpectations(t)
	f.ledger.AssertExpectations(t)
	f.gateway.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.insurance.AssertExpectations(t)
	f.redis.AssertExpectations(t)
}

func TestRecordCashPayment(t *testing.T) {
	f := newPaymentFixture()
	patient := &models.Patient{ID: primitive.NewObjectID()}

	f.patients.On("FindByID", mock.Anything, patient.ID.Hex()).Return(patient, nil)
	f.ledger.On("Record", mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
		return p.Status == models.PaymentCompleted &&
			p.Amount == 500 &&
			p.PaymentMethod == constvars.PaymentMethodCash &&
			strings.HasPrefix(p.TransactionID, constvars.CashTransactionPrefix) &&
			p.Patient == patient.ID
	})).Return(nil)

	payment, err := f.usecase.RecordCashPayment(context.Background(), &requests.CashPayment{
		Amount:    500,
		PatientID: patient.ID.Hex(),
	})

	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, payment.Status)
	assert.NotEmpty(t, payment.TransactionID)
	f.assertExpectations(t)
}

func TestRecordCashPayment_UnknownPatient(t *testing.T) {
	f := newPaymentFixture()
	patientID := primitive.NewObjectID().Hex()

	f.patients.On("FindByID", mock.Anything, patientID).Return(nil, nil)

	_, err := f.usecase.RecordCashPayment(context.Background(), &requests.CashPayment{Amount: 500, PatientID: patientID})

	require.Error(t, err)
	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
	f.ledger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestInitiateSTKPush(t *testing.T) {
	f := newPaymentFixture()
	patient := &models.Patient{ID: primitive.NewObjectID()}

	f.patients.On("FindByID", mock.Anything, patient.ID.Hex()).Return(patient, nil)
	f.redis.On("IncrementWithTTL", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(1, nil)
	f.gateway.On("InitiateSTKPush", mock.Anything, mock.MatchedBy(func(charge *requests.MobileMoneyCharge) bool {
		return charge.PhoneNumber == "0712345678" && charge.Amount == 200 && strings.HasPrefix(charge.AccountReference, constvars.MpesaAccountReferencePrefix)
	})).Return(&responses.MpesaSTKPush{
		CheckoutRequestID: "ws_CO_1",
		MerchantRequestID: "mr-1",
		ResponseCode:      "0",
	}, nil)
	f.ledger.On("Record", mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
		return p.Status == models.PaymentPending && p.TransactionID == "ws_CO_1" && p.PhoneNumber == "0712345678"
	})).Return(nil)

	result, err := f.usecase.InitiateSTKPush(context.Background(), &requests.STKPushPayment{
		PhoneNumber: "0712345678",
		Amount:      200,
		PatientID:   patient.ID.Hex(),
	})

	require.NoError(t, err)
	assert.Equal(t, "ws_CO_1", result.CheckoutRequestID)
	assert.Equal(t, "mr-1", result.MerchantRequestID)
	assert.Equal(t, models.PaymentPending, result.Payment.Status)
	f.assertExpectations(t)
}

func TestInitiateSTKPush_GatewayFailureStoresNothing(t *testing.T) {
	f := newPaymentFixture()
	patient := &models.Patient{ID: primitive.NewObjectID()}

	f.patients.On("FindByID", mock.Anything, patient.ID.Hex()).Return(patient, nil)
	f.redis.On("IncrementWithTTL", mock.Anything, mock.Anything, mock.Anything).Return(1, nil)
	f.gateway.On("InitiateSTKPush", mock.Anything, mock.Anything).Return(nil, exceptions.ErrGatewaySTKPush(errors.New("rejected")))

	_, err := f.usecase.InitiateSTKPush(context.Background(), &requests.STKPushPayment{
		PhoneNumber: "0712345678",
		Amount:      200,
		PatientID:   patient.ID.Hex(),
	})

	require.Error(t, err)
	assert.Equal(t, constvars.StatusBadGateway, exceptions.StatusCodeOf(err))
	f.ledger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestInitiateSTKPush_PhoneThrottled(t *testing.T) {
	f := newPaymentFixture()
	patient := &models.Patient{ID: primitive.NewObjectID()}

	f.patients.On("FindByID", mock.Anything, patient.ID.Hex()).Return(patient, nil)
	f.redis.On("IncrementWithTTL", mock.Anything, mock.Anything, mock.Anything).Return(4, nil)

	_, err := f.usecase.InitiateSTKPush(context.Background(), &requests.STKPushPayment{
		PhoneNumber: "0712345678",
		Amount:      200,
		PatientID:   patient.ID.Hex(),
	})

	require.Error(t, err)
	assert.Equal(t, constvars.StatusTooManyRequests, exceptions.StatusCodeOf(err))
	f.gateway.AssertNotCalled(t, "InitiateSTKPush", mock.Anything, mock.Anything)
}

func TestInitiateSTKPush_LimiterOutageFailsOpen(t *testing.T) {
	f := newPaymentFixture()
	patient := &models.Patient{ID: primitive.NewObjectID()}

	f.patients.On("FindByID", mock.Anything, patient.ID.Hex()).Return(patient, nil)
	f.redis.On("IncrementWithTTL", mock.Anything, mock.Anything, mock.Anything).Return(0, errors.New("connection refused"))
	f.gateway.On("InitiateSTKPush", mock.Anything, mock.Anything).Return(&responses.MpesaSTKPush{CheckoutRequestID: "ws_CO_2"}, nil)
	f.ledger.On("Record", mock.Anything, mock.Anything).Return(nil)

	result, err := f.usecase.InitiateSTKPush(context.Background(), &requests.STKPushPayment{
		PhoneNumber: "0712345678",
		Amount:      200,
		PatientID:   patient.ID.Hex(),
	})

	require.NoError(t, err)
	assert.Equal(t, "ws_CO_2", result.CheckoutRequestID)
}

func TestHandleMpesaCallback_Success(t *testing.T) {
	f := newPaymentFixture()
	payment := &models.Payment{
		ID:            primitive.NewObjectID(),
		Patient:       primitive.NewObjectID(),
		TransactionID: "ws_CO_1",
		PaymentMethod: constvars.PaymentMethodMpesa,
		Status:        models.PaymentPending,
		Amount:        200,
	}

	f.payments.On("FindByTransactionID", mock.Anything, "ws_CO_1").Return(payment, nil)
	f.payments.On("TransitionStatus", mock.Anything, "ws_CO_1", models.PaymentPending, mock.MatchedBy(func(set bson.M) bool {
		return set[constvars.MongoFieldStatus] == models.PaymentCompleted &&
			set[constvars.MongoFieldReceiptNumber] == "QAB123" &&
			set[constvars.MongoFieldPhoneNumber] == "254712345678"
	})).Return(true, nil)
	f.publisher.On("PublishPaymentEvent", mock.Anything, mock.MatchedBy(func(event *requests.PaymentEvent) bool {
		return event.EventType == constvars.EventPaymentCompleted && event.ReceiptNumber == "QAB123"
	})).Return(nil)

	err := f.usecase.HandleMpesaCallback(context.Background(), &requests.MpesaCallback{
		CheckoutRequestID:  "ws_CO_1",
		ResultCode:         0,
		MpesaReceiptNumber: "QAB123",
		PhoneNumber:        "254712345678",
	})

	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, payment.Status)
	f.assertExpectations(t)
}

func TestHandleMpesaCallback_RedeliveryIsNoop(t *testing.T) {
	f := newPaymentFixture()
	payment := &models.Payment{
		ID:                 primitive.NewObjectID(),
		TransactionID:      "ws_CO_1",
		PaymentMethod:      constvars.PaymentMethodMpesa,
		Status:             models.PaymentCompleted,
		MpesaReceiptNumber: "QAB123",
	}

	f.payments.On("FindByTransactionID", mock.Anything, "ws_CO_1").Return(payment, nil)

	err := f.usecase.HandleMpesaCallback(context.Background(), &requests.MpesaCallback{
		CheckoutRequestID:  "ws_CO_1",
		ResultCode:         0,
		MpesaReceiptNumber: "QAB123",
	})

	require.NoError(t, err)
	f.payments.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishPaymentEvent", mock.Anything, mock.Anything)
}

func TestHandleMpesaCallback_ConflictingOutcomeIgnored(t *testing.T) {
	f := newPaymentFixture()
	payment := &models.Payment{ID: primitive.NewObjectID(), TransactionID: "ws_CO_1", PaymentMethod: constvars.PaymentMethodMpesa, Status: models.PaymentCompleted}

	f.payments.On("FindByTransactionID", mock.Anything, "ws_CO_1").Return(payment, nil)

	err := f.usecase.HandleMpesaCallback(context.Background(), &requests.MpesaCallback{
		CheckoutRequestID: "ws_CO_1",
		ResultCode:        1032,
	})

	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, payment.Status)
	f.payments.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleMpesaCallback_Failure(t *testing.T) {
	f := newPaymentFixture()
	payment := &models.Payment{ID: primitive.NewObjectID(), TransactionID: "ws_CO_9", PaymentMethod: constvars.PaymentMethodMpesa, Status: models.PaymentPending}

	f.payments.On("FindByTransactionID", mock.Anything, "ws_CO_9").Return(payment, nil)
	f.payments.On("TransitionStatus", mock.Anything, "ws_CO_9", models.PaymentPending, mock.MatchedBy(func(set bson.M) bool {
		_, hasReceipt := set[constvars.MongoFieldReceiptNumber]
		return set[constvars.MongoFieldStatus] == models.PaymentFailed && !hasReceipt
	})).Return(true, nil)
	f.publisher.On("PublishPaymentEvent", mock.Anything, mock.MatchedBy(func(event *requests.PaymentEvent) bool {
		return event.EventType == constvars.EventPaymentFailed
	})).Return(errors.New("broker down"))

	err := f.usecase.HandleMpesaCallback(context.Background(), &requests.MpesaCallback{
		CheckoutRequestID: "ws_CO_9",
		ResultCode:        1032,
	})

	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestHandleMpesaCallback_IgnoresInsuranceClaim(t *testing.T) {
	f := newPaymentFixture()
	payment := &models.Payment{
		ID:            primitive.NewObjectID(),
		TransactionID: "CLM-1709967600000-AB12CD",
		PaymentMethod: constvars.PaymentMethodInsurance,
		Status:        models.PaymentPending,
		InsuranceClaim: &models.InsuranceClaim{
			ClaimNumber: "CLM-1709967600000-AB12CD",
			Status:      constvars.ClaimStatusPending,
		},
	}

	f.payments.On("FindByTransactionID", mock.Anything, "CLM-1709967600000-AB12CD").Return(payment, nil)

	err := f.usecase.HandleMpesaCallback(context.Background(), &requests.MpesaCallback{
		CheckoutRequestID:  "CLM-1709967600000-AB12CD",
		ResultCode:         0,
		MpesaReceiptNumber: "FAKE123",
	})

	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.Empty(t, payment.MpesaReceiptNumber)
	f.payments.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishPaymentEvent", mock.Anything, mock.Anything)
}

func TestHandleMpesaCallback_UnknownCheckoutID(t *testing.T) {
	f := newPaymentFixture()

	f.payments.On("FindByTransactionID", mock.Anything, "ws_CO_missing").Return(nil, nil)

	err := f.usecase.HandleMpesaCallback(context.Background(), &requests.MpesaCallback{CheckoutRequestID: "ws_CO_missing"})

	require.NoError(t, err)
	f.payments.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleMpesaCallback_LostRace(t *testing.T) {
	f := newPaymentFixture()
	payment := &models.Payment{ID: primitive.NewObjectID(), TransactionID: "ws_CO_1", PaymentMethod: constvars.PaymentMethodMpesa, Status: models.PaymentPending}

	f.payments.On("FindByTransactionID", mock.Anything, "ws_CO_1").Return(payment, nil)
	f.payments.On("TransitionStatus", mock.Anything, "ws_CO_1", models.PaymentPending, mock.Anything).Return(false, nil)

	err := f.usecase.HandleMpesaCallback(context.Background(), &requests.MpesaCallback{CheckoutRequestID: "ws_CO_1"})

	require.NoError(t, err)
	f.publisher.AssertNotCalled(t, "PublishPaymentEvent", mock.Anything, mock.Anything)
}

func TestHandleMpesaCallback_StorageError(t *testing.T) {
	f := newPaymentFixture()

	f.payments.On("FindByTransactionID", mock.Anything, "ws_CO_1").Return(nil, exceptions.ErrMongoDBFindDocument(errors.New("timeout")))

	err := f.usecase.HandleMpesaCallback(context.Background(), &requests.MpesaCallback{CheckoutRequestID: "ws_CO_1"})

	require.Error(t, err)
	assert.Equal(t, constvars.StatusInternalServerError, exceptions.StatusCodeOf(err))
}

func TestGetPaymentByID_NotFound(t *testing.T) {
	f := newPaymentFixture()
	paymentID := primitive.NewObjectID().Hex()

	f.payments.On("FindByID", mock.Anything, paymentID).Return(nil, nil)

	_, err := f.usecase.GetPaymentByID(context.Background(), paymentID)

	require.Error(t, err)
	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
}

func TestInitiatePayment_Insurance(t *testing.T) {
	f := newPaymentFixture()
	patientID := primitive.NewObjectID().Hex()
	payment := &models.Payment{Status: models.PaymentPending, PaymentMethod: constvars.PaymentMethodInsurance}

	f.insurance.On("SubmitClaim", mock.Anything, &requests.SubmitClaim{
		PatientID:          patientID,
		Amount:             1500,
		ServiceDescription: "Consultation",
	}).Return(&responses.ClaimSubmission{
		Claim:   responses.ClaimSummary{ClaimNumber: "CLM-1", Status: "pending"},
		Payment: payment,
	}, nil)

	result, err := f.usecase.InitiatePayment(context.Background(), &requests.InitiatePayment{
		PatientID:          patientID,
		Amount:             1500,
		PaymentMethod:      constvars.PaymentMethodInsurance,
		ServiceDescription: "Consultation",
	})

	require.NoError(t, err)
	require.NotNil(t, result.Claim)
	assert.Equal(t, "CLM-1", result.Claim.ClaimNumber)
	assert.Same(t, payment, result.Payment)
}

func TestInitiatePayment_MpesaRequiresValidPhone(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.usecase.InitiatePayment(context.Background(), &requests.InitiatePayment{
		PatientID:     primitive.NewObjectID().Hex(),
		Amount:        100,
		PaymentMethod: constvars.PaymentMethodMpesa,
		PhoneNumber:   "abc",
	})

	require.Error(t, err)
	assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
	f.gateway.AssertNotCalled(t, "InitiateSTKPush", mock.Anything, mock.Anything)
}

func TestInitiatePayment_CardUnsupported(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.usecase.InitiatePayment(context.Background(), &requests.InitiatePayment{
		PatientID:     primitive.NewObjectID().Hex(),
		Amount:        100,
		PaymentMethod: constvars.PaymentMethodCard,
	})

	require.Error(t, err)
	assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
}
