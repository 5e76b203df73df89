package controllers

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
}

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase) *PaymentController {
	return &PaymentController{
		Log:            logger,
		PaymentUsecase: paymentUsecase,
	}
}

func (ctrl *PaymentController) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.InitiatePayment)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	result, err := ctrl.PaymentUsecase.InitiatePayment(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, "", result)
}

func (ctrl *PaymentController) InitiateSTKPush(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFrom(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.STKPushPayment)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	result, err := ctrl.PaymentUsecase.InitiateSTKPush(r.Context(), request)
	if err != nil {
		ctrl.Log.Error("Failed to initiate STK push",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.STKPushInitiatedSuccessMessage, result)
}

func (ctrl *PaymentController) RecordCashPayment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.CashPayment)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	payment, err := ctrl.PaymentUsecase.RecordCashPayment(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CashPaymentRecordedSuccessMessage, payment)
}

// MpesaCallback acknowledges every well-formed notification, including ones
// for unknown checkout request IDs, so the gateway stops retrying.
func (ctrl *PaymentController) MpesaCallback(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil || !gjson.ValidBytes(body) {
		ctrl.Log.Warn("Failed to read gateway callback",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	callback, found := ParseMpesaCallback(body)
	if !found {
		ctrl.Log.Warn("Gateway callback without stkCallback",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		ctrl.acknowledgeCallback(w)
		return
	}

	if err := ctrl.PaymentUsecase.HandleMpesaCallback(r.Context(), callback); err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.acknowledgeCallback(w)
}

func (ctrl *PaymentController) acknowledgeCallback(w http.ResponseWriter) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CallbackAcknowledgedMessage, responses.MpesaCallbackAck{
		ResultCode: constvars.MpesaResultCodeSuccess,
		ResultDesc: constvars.MpesaCallbackAcceptedDesc,
	})
}

func (ctrl *PaymentController) ListPayments(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := &requests.PaymentFilter{
		Status:        query.Get(constvars.QueryParamStatus),
		PatientID:     query.Get(constvars.QueryParamPatientID),
		PaymentMethod: query.Get(constvars.QueryParamPaymentMethod),
	}
	if !validate(ctrl.Log, w, requestID, filter) {
		return
	}

	payments, err := ctrl.PaymentUsecase.ListPayments(r.Context(), filter)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponseWithCount(w, constvars.StatusOK, "", len(payments), payments)
}

func (ctrl *PaymentController) GetPayment(w http.ResponseWriter, r *http.Request) {
	if _, ok := requestIDFrom(ctrl.Log, w, r); !ok {
		return
	}

	payment, err := ctrl.PaymentUsecase.GetPaymentByID(r.Context(), chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, "", payment)
}

// ParseMpesaCallback flattens Body.stkCallback. found is false when the
// notification carries no stkCallback object.
func ParseMpesaCallback(body []byte) (callback *requests.MpesaCallback, found bool) {
	stk := gjson.GetBytes(body, "Body.stkCallback")
	if !stk.Exists() {
		return nil, false
	}

	callback = &requests.MpesaCallback{
		MerchantRequestID: stk.Get("MerchantRequestID").String(),
		CheckoutRequestID: stk.Get("CheckoutRequestID").String(),
		ResultCode:        stk.Get("ResultCode").Int(),
		ResultDesc:        stk.Get("ResultDesc").String(),
	}

	stk.Get("CallbackMetadata.Item").ForEach(func(_, item gjson.Result) bool {
		value := item.Get("Value")
		switch item.Get("Name").String() {
		case constvars.MpesaItemAmount:
			callback.Amount = value.Float()
		case constvars.MpesaItemReceiptNumber:
			callback.MpesaReceiptNumber = value.String()
		case constvars.MpesaItemPhoneNumber:
			callback.PhoneNumber = value.String()
		}
		return true
	})
	return callback, true
}
