package mocks

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type PatientUsecase struct {
	mock.Mock
}

func (m *PatientUsecase) CreatePatient(ctx context.Context, request *requests.CreatePatient) (*models.Patient, error) {
	args := m.Called(ctx, request)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *PatientUsecase) ListPatients(ctx context.Context, filter *requests.PatientFilter) ([]models.Patient, error) {
	args := m.Called(ctx, filter)
	patients, _ := args.Get(0).([]models.Patient)
	return patients, args.Error(1)
}

func (m *PatientUsecase) GetPatientByID(ctx context.Context, patientID string) (*models.Patient, error) {
	args := m.Called(ctx, patientID)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *PatientUsecase) UpdatePatient(ctx context.Context, patientID string, request *requests.UpdatePatient) (*models.Patient, error) {
	args := m.Called(ctx, patientID, request)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *PatientUsecase) AddVisit(ctx context.Context, patientID string, request *requests.AddVisit) (*models.Patient, error) {
	args := m.Called(ctx, patientID, request)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *PatientUsecase) DeletePatient(ctx context.Context, patientID string) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}

type PaymentUsecase struct {
	mock.Mock
}

func (m *PaymentUsecase) InitiatePayment(ctx context.Context, request *requests.InitiatePayment) (*responses.PaymentInitiated, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.PaymentInitiated)
	return result, args.Error(1)
}

func (m *PaymentUsecase) InitiateSTKPush(ctx context.Context, request *requests.STKPushPayment) (*responses.STKPushInitiated, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.STKPushInitiated)
	return result, args.Error(1)
}

func (m *PaymentUsecase) RecordCashPayment(ctx context.Context, request *requests.CashPayment) (*models.Payment, error) {
	args := m.Called(ctx, request)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *PaymentUsecase) HandleMpesaCallback(ctx context.Context, callback *requests.MpesaCallback) error {
	args := m.Called(ctx, callback)
	return args.Error(0)
}

func (m *PaymentUsecase) ListPayments(ctx context.Context, filter *requests.PaymentFilter) ([]models.Payment, error) {
	args := m.Called(ctx, filter)
	payments, _ := args.Get(0).([]models.Payment)
	return payments, args.Error(1)
}

func (m *PaymentUsecase) GetPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	args := m.Called(ctx, paymentID)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

type PaymentLedger struct {
	mock.Mock
}

func (m *PaymentLedger) Record(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *PaymentLedger) Reconcile(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

type InsuranceUsecase struct {
	mock.Mock
}

func (m *InsuranceUsecase) SubmitClaim(ctx context.Context, request *requests.SubmitClaim) (*responses.ClaimSubmission, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.ClaimSubmission)
	return result, args.Error(1)
}

func (m *InsuranceUsecase) GetClaimStatus(ctx context.Context, claimNumber string) (*responses.ClaimStatus, error) {
	args := m.Called(ctx, claimNumber)
	result, _ := args.Get(0).(*responses.ClaimStatus)
	return result, args.Error(1)
}

func (m *InsuranceUsecase) GetPatientInsurance(ctx context.Context, patientID string) (*responses.PatientInsurance, error) {
	args := m.Called(ctx, patientID)
	result, _ := args.Get(0).(*responses.PatientInsurance)
	return result, args.Error(1)
}

func (m *InsuranceUsecase) VerifyNSSF(ctx context.Context, request *requests.VerifyNSSF) (*responses.NSSFVerification, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.NSSFVerification)
	return result, args.Error(1)
}

func (m *InsuranceUsecase) VerifySHA(ctx context.Context, request *requests.VerifySHA) (*responses.SHAVerification, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.SHAVerification)
	return result, args.Error(1)
}

type AuthUsecase struct {
	mock.Mock
}

func (m *AuthUsecase) Register(ctx context.Context, request *requests.RegisterUser) (*responses.UserProfile, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.UserProfile)
	return result, args.Error(1)
}

func (m *AuthUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.LoginUser)
	return result, args.Error(1)
}

func (m *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *AuthUsecase) ResolveCaller(ctx context.Context, bearerToken string) (*models.Caller, error) {
	args := m.Called(ctx, bearerToken)
	caller, _ := args.Get(0).(*models.Caller)
	return caller, args.Error(1)
}

func (m *AuthUsecase) GetProfile(ctx context.Context, userID string) (*responses.UserProfile, error) {
	args := m.Called(ctx, userID)
	result, _ := args.Get(0).(*responses.UserProfile)
	return result, args.Error(1)
}
