package patients

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type patientUsecase struct {
	PatientRepository contracts.PatientRepository
	Log               *zap.Logger
	Now               func() time.Time
}

func NewPatientUsecase(patientRepository contracts.PatientRepository, logger *zap.Logger) contracts.PatientUsecase {
	return &patientUsecase{
		PatientRepository: patientRepository,
		Log:               logger,
		Now:               time.Now,
	}
}

func (uc *patientUsecase) CreatePatient(ctx context.Context, request *requests.CreatePatient) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.CreatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	nationalID := strings.TrimSpace(request.NationalID)
	if nationalID != "" {
		existing, err := uc.PatientRepository.FindByNationalID(ctx, nationalID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			uc.Log.Warn("patientUsecase.CreatePatient national ID already registered",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPatientIDKey, existing.ID.Hex()),
			)
			return nil, exceptions.ErrNationalIDAlreadyExists(nil, nationalID)
		}
	}

	assignedWorker := request.AssignedWorker
	if caller := utils.CallerFromContext(ctx); assignedWorker == "" && caller != nil {
		assignedWorker = caller.UserID
	}

	patient := &models.Patient{
		Name:              strings.TrimSpace(request.Name),
		Gender:            request.Gender,
		PhoneNumber:       request.PhoneNumber,
		Address:           request.Address,
		NationalID:        nationalID,
		Sickness:          request.Sickness,
		Symptoms:          nonNilStrings(request.Symptoms),
		Diagnosis:         request.Diagnosis,
		MedicalHistory:    request.MedicalHistory,
		CurrentMedication: request.CurrentMedication,
		InsuranceProvider: defaultString(request.InsuranceProvider, constvars.InsuranceProviderNone),
		InsuranceNumber:   request.InsuranceNumber,
		InsuranceStatus:   defaultString(request.InsuranceStatus, constvars.InsuranceStatusInactive),
		AssignedWorker:    assignedWorker,
		Visits:            []models.Visit{},
		Payments:          []primitive.ObjectID{},
		Status:            defaultString(request.Status, constvars.PatientStatusActive),
	}
	if request.Age != nil {
		patient.Age = *request.Age
	}
	if patient.MedicalHistory == nil {
		patient.MedicalHistory = []models.MedicalHistory{}
	}
	if patient.CurrentMedication == nil {
		patient.CurrentMedication = []models.CurrentMedication{}
	}
	patient.Touch(uc.Now())

	patientID, err := uc.PatientRepository.CreatePatient(ctx, patient)
	if err != nil {
		uc.Log.Error("patientUsecase.CreatePatient error inserting patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("patientUsecase.CreatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return patient, nil
}

func (uc *patientUsecase) ListPatients(ctx context.Context, filter *requests.PatientFilter) ([]models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.ListPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryKey, filter),
	)

	return uc.PatientRepository.FindAll(ctx, filter)
}

func (uc *patientUsecase) GetPatientByID(ctx context.Context, patientID string) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.GetPatientByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil, patientID)
	}
	return patient, nil
}

func (uc *patientUsecase) UpdatePatient(ctx context.Context, patientID string, request *requests.UpdatePatient) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.UpdatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	existing, err := uc.GetPatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if request.NationalID != nil {
		nationalID := strings.TrimSpace(*request.NationalID)
		request.NationalID = &nationalID
		if nationalID != "" && nationalID != existing.NationalID {
			other, err := uc.PatientRepository.FindByNationalID(ctx, nationalID)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != existing.ID {
				return nil, exceptions.ErrNationalIDAlreadyExists(nil, nationalID)
			}
		}
	}

	updated, err := uc.PatientRepository.UpdatePatient(ctx, patientID, BuildPatientUpdate(request, uc.Now()))
	if err != nil {
		uc.Log.Error("patientUsecase.UpdatePatient error updating patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrPatientNotFound(nil, patientID)
	}

	uc.Log.Info("patientUsecase.UpdatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return updated, nil
}

// AddVisit appends a visit dated now and attended by the caller.
func (uc *patientUsecase) AddVisit(ctx context.Context, patientID string, request *requests.AddVisit) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.AddVisit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	attendedBy := request.AttendedBy
	if caller := utils.CallerFromContext(ctx); attendedBy == "" && caller != nil {
		attendedBy = caller.UserID
	}

	visit := &models.Visit{
		ID:         primitive.NewObjectID(),
		Date:       uc.Now(),
		Purpose:    request.Purpose,
		Diagnosis:  request.Diagnosis,
		Treatment:  request.Treatment,
		Cost:       request.Cost,
		AttendedBy: attendedBy,
	}

	patient, err := uc.PatientRepository.PushVisit(ctx, patientID, visit)
	if err != nil {
		uc.Log.Error("patientUsecase.AddVisit error appending visit",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil, patientID)
	}

	uc.Log.Info("patientUsecase.AddVisit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Int(constvars.LoggingCountKey, len(patient.Visits)),
	)
	return patient, nil
}

func (uc *patientUsecase) DeletePatient(ctx context.Context, patientID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.DeletePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	deleted, err := uc.PatientRepository.DeleteByID(ctx, patientID)
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrPatientNotFound(nil, patientID)
	}
	return nil
}

// BuildPatientUpdate sets only the fields present in request. An empty national
// ID is unset so the sparse unique index keeps ignoring it. Visits and payment
// references are never touched.
func BuildPatientUpdate(request *requests.UpdatePatient, now time.Time) bson.M {
	set := bson.M{constvars.MongoFieldUpdatedAt: now}
	unset := bson.M{}

	setString := func(field string, value *string) {
		if value != nil {
			set[field] = *value
		}
	}

	setString(constvars.MongoFieldName, request.Name)
	setString("gender", request.Gender)
	setString(constvars.MongoFieldPhoneNumber, request.PhoneNumber)
	setString("address", request.Address)
	setString("sickness", request.Sickness)
	setString("diagnosis", request.Diagnosis)
	setString(constvars.MongoFieldInsuranceProvider, request.InsuranceProvider)
	setString(constvars.MongoFieldInsuranceNumber, request.InsuranceNumber)
	setString(constvars.MongoFieldInsuranceStatus, request.InsuranceStatus)
	setString(constvars.MongoFieldStatus, request.Status)

	if request.Age != nil {
		set["age"] = *request.Age
	}
	if request.Symptoms != nil {
		set["symptoms"] = nonNilStrings(*request.Symptoms)
	}
	if request.MedicalHistory != nil {
		set["medicalHistory"] = *request.MedicalHistory
	}
	if request.CurrentMedication != nil {
		set["currentMedication"] = *request.CurrentMedication
	}
	if request.NationalID != nil {
		if *request.NationalID == "" {
			unset[constvars.MongoFieldNationalID] = ""
		} else {
			set[constvars.MongoFieldNationalID] = *request.NationalID
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
