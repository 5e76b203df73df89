package mocks

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

type PatientRepository struct {
	mock.Mock
}

func (m *PatientRepository) CreatePatient(ctx context.Context, patient *models.Patient) (string, error) {
	args := m.Called(ctx, patient)
	return args.String(0), args.Error(1)
}

func (m *PatientRepository) FindAll(ctx context.Context, filter *requests.PatientFilter) ([]models.Patient, error) {
	args := m.Called(ctx, filter)
	patients, _ := args.Get(0).([]models.Patient)
	return patients, args.Error(1)
}

func (m *PatientRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	args := m.Called(ctx, patientID)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *PatientRepository) FindByNationalID(ctx context.Context, nationalID string) (*models.Patient, error) {
	args := m.Called(ctx, nationalID)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *PatientRepository) UpdatePatient(ctx context.Context, patientID string, update bson.M) (*models.Patient, error) {
	args := m.Called(ctx, patientID, update)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *PatientRepository) PushVisit(ctx context.Context, patientID string, visit *models.Visit) (*models.Patient, error) {
	args := m.Called(ctx, patientID, visit)
	patient, _ := args.Get(0).(*models.Patient)
	return patient, args.Error(1)
}

func (m *PatientRepository) AddPaymentReference(ctx context.Context, patientID, paymentID string) (bool, error) {
	args := m.Called(ctx, patientID, paymentID)
	return args.Bool(0), args.Error(1)
}

func (m *PatientRepository) DeleteByID(ctx context.Context, patientID string) (bool, error) {
	args := m.Called(ctx, patientID)
	return args.Bool(0), args.Error(1)
}

type PaymentRepository struct {
	mock.Mock
}

func (m *PaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) (string, error) {
	args := m.Called(ctx, payment)
	return args.String(0), args.Error(1)
}

func (m *PaymentRepository) FindAll(ctx context.Context, filter *requests.PaymentFilter) ([]models.Payment, error) {
	args := m.Called(ctx, filter)
	payments, _ := args.Get(0).([]models.Payment)
	return payments, args.Error(1)
}

func (m *PaymentRepository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	args := m.Called(ctx, paymentID)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *PaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	args := m.Called(ctx, transactionID)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *PaymentRepository) FindByClaimNumber(ctx context.Context, claimNumber string) (*models.Payment, error) {
	args := m.Called(ctx, claimNumber)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *PaymentRepository) FindCreatedSince(ctx context.Context, since time.Time) ([]models.Payment, error) {
	args := m.Called(ctx, since)
	payments, _ := args.Get(0).([]models.Payment)
	return payments, args.Error(1)
}

func (m *PaymentRepository) TransitionStatus(ctx context.Context, transactionID string, from models.PaymentStatus, set bson.M) (bool, error) {
	args := m.Called(ctx, transactionID, from, set)
	return args.Bool(0), args.Error(1)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, userModel *models.User) (string, error) {
	args := m.Called(ctx, userModel)
	return args.String(0), args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
