package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, request *requests.CreatePatient) (*models.Patient, error)
	ListPatients(ctx context.Context, filter *requests.PatientFilter) ([]models.Patient, error)
	GetPatientByID(ctx context.Context, patientID string) (*models.Patient, error)
	UpdatePatient(ctx context.Context, patientID string, request *requests.UpdatePatient) (*models.Patient, error)
	AddVisit(ctx context.Context, patientID string, request *requests.AddVisit) (*models.Patient, error)
	DeletePatient(ctx context.Context, patientID string) error
}

// PatientRepository lookups return (nil, nil) when no document matches.
type PatientRepository interface {
	CreatePatient(ctx context.Context, patient *models.Patient) (patientID string, err error)
	FindAll(ctx context.Context, filter *requests.PatientFilter) ([]models.Patient, error)
	FindByID(ctx context.Context, patientID string) (*models.Patient, error)
	FindByNationalID(ctx context.Context, nationalID string) (*models.Patient, error)
	UpdatePatient(ctx context.Context, patientID string, update bson.M) (*models.Patient, error)
	PushVisit(ctx context.Context, patientID string, visit *models.Visit) (*models.Patient, error)
	AddPaymentReference(ctx context.Context, patientID, paymentID string) (added bool, err error)
	DeleteByID(ctx context.Context, patientID string) (deleted bool, err error)
}
