package payments

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/shared/ratelimiter"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const stkPushLimiterGroup = "stk-push"

type paymentUsecase struct {
	PatientRepository contracts.PatientRepository
	PaymentRepository contracts.PaymentRepository
	PaymentLedger     contracts.PaymentLedger
	Gateway           contracts.MobileMoneyGateway
	Publisher         contracts.PaymentEventPublisher
	InsuranceUsecase  contracts.InsuranceUsecase
	PhoneLimiter      *ratelimiter.ResourceLimiter
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
	Now               func() time.Time
}

func NewPaymentUsecase(
	patientRepository contracts.PatientRepository,
	paymentRepository contracts.PaymentRepository,
	paymentLedger contracts.PaymentLedger,
	gateway contracts.MobileMoneyGateway,
	publisher contracts.PaymentEventPublisher,
	insuranceUsecase contracts.InsuranceUsecase,
	phoneLimiter *ratelimiter.ResourceLimiter,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	return &paymentUsecase{
		PatientRepository: patientRepository,
		PaymentRepository: paymentRepository,
		PaymentLedger:     paymentLedger,
		Gateway:           gateway,
		Publisher:         publisher,
		InsuranceUsecase:  insuranceUsecase,
		PhoneLimiter:      phoneLimiter,
		InternalConfig:    internalConfig,
		Log:               logger,
		Now:               time.Now,
	}
}

// InitiatePayment dispatches to the cash, mobile money or insurance flow.
func (uc *paymentUsecase) InitiatePayment(ctx context.Context, request *requests.InitiatePayment) (*responses.PaymentInitiated, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.InitiatePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentMethodKey, request.PaymentMethod),
	)

	switch request.PaymentMethod {
	case constvars.PaymentMethodCash:
		payment, err := uc.RecordCashPayment(ctx, &requests.CashPayment{
			Amount:      request.Amount,
			PatientID:   request.PatientID,
			Description: request.Description,
		})
		if err != nil {
			return nil, err
		}
		return &responses.PaymentInitiated{Payment: payment}, nil

	case constvars.PaymentMethodMpesa:
		stkRequest := &requests.STKPushPayment{
			PhoneNumber: request.PhoneNumber,
			Amount:      request.Amount,
			PatientID:   request.PatientID,
			Description: request.Description,
		}
		if err := utils.ValidateStruct(stkRequest); err != nil {
			return nil, exceptions.ErrInputValidation(err)
		}
		result, err := uc.InitiateSTKPush(ctx, stkRequest)
		if err != nil {
			return nil, err
		}
		return &responses.PaymentInitiated{
			Payment:           result.Payment,
			CheckoutRequestID: result.CheckoutRequestID,
			MerchantRequestID: result.MerchantRequestID,
		}, nil

	case constvars.PaymentMethodInsurance:
		submission, err := uc.InsuranceUsecase.SubmitClaim(ctx, &requests.SubmitClaim{
			PatientID:          request.PatientID,
			Amount:             request.Amount,
			ServiceDescription: request.ServiceDescription,
			Documents:          request.Documents,
		})
		if err != nil {
			return nil, err
		}
		claim := submission.Claim
		return &responses.PaymentInitiated{Payment: submission.Payment, Claim: &claim}, nil
	}

	return nil, exceptions.ErrValidationMessage("paymentMethod", fmt.Sprintf("%s payments cannot be initiated", request.PaymentMethod))
}

// RecordCashPayment stores a payment that is completed on creation.
func (uc *paymentUsecase) RecordCashPayment(ctx context.Context, request *requests.CashPayment) (*models.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.RecordCashPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	patient, err := uc.findPatient(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}

	transactionID, err := utils.GenerateCashTransactionID(constvars.CashTransactionPrefix, uc.Now())
	if err != nil {
		return nil, exceptions.ErrServerProcess(err)
	}

	payment := &models.Payment{
		Patient:       patient.ID,
		Amount:        request.Amount,
		PaymentMethod: constvars.PaymentMethodCash,
		TransactionID: transactionID,
		Status:        models.PaymentCompleted,
		Description:   request.Description,
	}

	if err := uc.PaymentLedger.Record(ctx, payment); err != nil {
		return nil, err
	}

	uc.Log.Info("paymentUsecase.RecordCashPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID.Hex()),
		zap.String(constvars.LoggingTransactionIDKey, transactionID),
	)
	return payment, nil
}

// InitiateSTKPush asks the gateway to prompt the payer and records a pending
// payment keyed by the returned checkout request ID. Nothing is stored when the
// gateway fails.
func (uc *paymentUsecase) InitiateSTKPush(ctx context.Context, request *requests.STKPushPayment) (*responses.STKPushInitiated, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.InitiateSTKPush called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	patient, err := uc.findPatient(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}

	if err := uc.throttlePhone(ctx, request.PhoneNumber); err != nil {
		return nil, err
	}

	gatewayResponse, err := uc.Gateway.InitiateSTKPush(ctx, &requests.MobileMoneyCharge{
		PhoneNumber:      request.PhoneNumber,
		Amount:           request.Amount,
		AccountReference: utils.BuildMpesaAccountReference(patient.ID.Hex()),
		Description:      request.Description,
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.InitiateSTKPush gateway error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	payment := &models.Payment{
		Patient:       patient.ID,
		Amount:        request.Amount,
		PaymentMethod: constvars.PaymentMethodMpesa,
		TransactionID: gatewayResponse.CheckoutRequestID,
		PhoneNumber:   request.PhoneNumber,
		Status:        models.PaymentPending,
		Description:   request.Description,
	}

	if err := uc.PaymentLedger.Record(ctx, payment); err != nil {
		return nil, err
	}

	uc.Log.Info("paymentUsecase.InitiateSTKPush succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID.Hex()),
		zap.String(constvars.LoggingCheckoutRequestIDKey, gatewayResponse.CheckoutRequestID),
	)
	return &responses.STKPushInitiated{
		CheckoutRequestID: gatewayResponse.CheckoutRequestID,
		MerchantRequestID: gatewayResponse.MerchantRequestID,
		Payment:           payment,
	}, nil
}

// HandleMpesaCallback settles the pending payment matching the checkout request ID.
// Unknown IDs, repeated deliveries and conflicting outcomes for a settled
// payment all return nil so the gateway stops retrying. Only storage failures
// are returned.
func (uc *paymentUsecase) HandleMpesaCallback(ctx context.Context, callback *requests.MpesaCallback) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.HandleMpesaCallback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCheckoutRequestIDKey, callback.CheckoutRequestID),
		zap.Int64(constvars.LoggingResultCodeKey, callback.ResultCode),
	)

	if callback.CheckoutRequestID == "" {
		uc.Log.Warn("paymentUsecase.HandleMpesaCallback callback without checkout request ID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil
	}

	payment, err := uc.PaymentRepository.FindByTransactionID(ctx, callback.CheckoutRequestID)
	if err != nil {
		return err
	}
	if payment == nil {
		uc.Log.Warn("paymentUsecase.HandleMpesaCallback unknown checkout request ID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCheckoutRequestIDKey, callback.CheckoutRequestID),
		)
		return nil
	}
	if payment.PaymentMethod != constvars.PaymentMethodMpesa {
		uc.Log.Warn("paymentUsecase.HandleMpesaCallback checkout request ID belongs to a non mpesa payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, payment.ID.Hex()),
			zap.String(constvars.LoggingPaymentMethodKey, payment.PaymentMethod),
		)
		return nil
	}

	target := models.PaymentFailed
	if callback.ResultCode == constvars.MpesaResultCodeSuccess {
		target = models.PaymentCompleted
	}

	previous := payment.Status
	now := uc.Now()
	changed, err := payment.Transition(target, now)
	if err != nil {
		uc.Log.Warn("paymentUsecase.HandleMpesaCallback ignoring callback for settled payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, payment.ID.Hex()),
			zap.String(constvars.LoggingPaymentStatusKey, string(previous)),
			zap.Error(err),
		)
		return nil
	}
	if !changed {
		uc.Log.Info("paymentUsecase.HandleMpesaCallback duplicate callback",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, payment.ID.Hex()),
		)
		return nil
	}

	set := bson.M{
		constvars.MongoFieldStatus:    target,
		constvars.MongoFieldUpdatedAt: now,
	}
	if target == models.PaymentCompleted {
		if callback.MpesaReceiptNumber != "" {
			set[constvars.MongoFieldReceiptNumber] = callback.MpesaReceiptNumber
			payment.MpesaReceiptNumber = callback.MpesaReceiptNumber
		}
		if callback.PhoneNumber != "" {
			set[constvars.MongoFieldPhoneNumber] = callback.PhoneNumber
			payment.PhoneNumber = callback.PhoneNumber
		}
	}

	updated, err := uc.PaymentRepository.TransitionStatus(ctx, callback.CheckoutRequestID, previous, set)
	if err != nil {
		uc.Log.Error("paymentUsecase.HandleMpesaCallback error updating payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if !updated {
		uc.Log.Info("paymentUsecase.HandleMpesaCallback payment settled by a concurrent callback",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, payment.ID.Hex()),
		)
		return nil
	}

	eventType := constvars.EventPaymentFailed
	if target == models.PaymentCompleted {
		eventType = constvars.EventPaymentCompleted
	}
	if err := uc.Publisher.PublishPaymentEvent(ctx, utils.BuildPaymentEvent(eventType, payment, now)); err != nil {
		uc.Log.Warn("paymentUsecase.HandleMpesaCallback error publishing payment event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	uc.Log.Info("paymentUsecase.HandleMpesaCallback succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID.Hex()),
		zap.String(constvars.LoggingPaymentStatusKey, string(target)),
	)
	return nil
}

func (uc *paymentUsecase) ListPayments(ctx context.Context, filter *requests.PaymentFilter) ([]models.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.ListPayments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryKey, filter),
	)

	return uc.PaymentRepository.FindAll(ctx, filter)
}

func (uc *paymentUsecase) GetPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.GetPaymentByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, paymentID),
	)

	payment, err := uc.PaymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(nil, paymentID)
	}
	return payment, nil
}

func (uc *paymentUsecase) findPatient(ctx context.Context, patientID string) (*models.Patient, error) {
	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil, patientID)
	}
	return patient, nil
}

// throttlePhone caps STK prompts per payer phone per minute. Limiter outages fail open.
func (uc *paymentUsecase) throttlePhone(ctx context.Context, phoneNumber string) error {
	if uc.PhoneLimiter == nil || uc.InternalConfig == nil || uc.InternalConfig.Mpesa.PhoneSTKPushLimitPerMinute <= 0 {
		return nil
	}
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	result, err := uc.PhoneLimiter.ApplyResourceLimiter(ctx, &ratelimiter.ApplyResourceLimiterInput{
		ResourceName:      utils.NormalizeMpesaPhoneNumber(phoneNumber),
		LimiterGroupName:  stkPushLimiterGroup,
		WindowDurationSec: 60,
		MaxQuota:          uc.InternalConfig.Mpesa.PhoneSTKPushLimitPerMinute,
		NowUTC:            uc.Now().UTC(),
	})
	if err != nil {
		uc.Log.Warn("paymentUsecase.throttlePhone limiter unavailable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil
	}
	if !result.Allowed {
		uc.Log.Warn("paymentUsecase.throttlePhone STK push quota exceeded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int("retry_after_seconds", result.RetryAfterSecs),
		)
		return exceptions.ErrTooManyRequests(nil).WithPayload(map[string]int{"retryAfterSeconds": result.RetryAfterSecs})
	}
	return nil
}
