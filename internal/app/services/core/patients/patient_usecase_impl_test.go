package patients

import (
	"clinic-service/internal/app/contracts/mocks"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"errors"
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

func newTestPatientUsecase(repo *mocks.PatientRepository) *patientUsecase {
	return &patientUsecase{
		PatientRepository: repo,
		Log:               zap.NewNop(),
		Now:               func() time.Time { return fixedNow },
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestPatientUsecase_CreatePatient_Defaults(t *testing.T) {
	repo := new(mocks.PatientRepository)
	repo.On("CreatePatient", mock.Anything, mock.AnythingOfType("*models.Patient")).Return(primitive.NewObjectID().Hex(), nil)

	ctx := utils.ContextWithCaller(context.Background(), &models.Caller{UserID: "worker-1", Role: constvars.RoleCommunityWorker})
	patient, err := newTestPatientUsecase(repo).CreatePatient(ctx, &requests.CreatePatient{
		Name:        "Wanjiku Kamau",
		Age:         intPtr(34),
		Gender:      constvars.GenderFemale,
		PhoneNumber: "0712345678",
		Sickness:    "Malaria",
	})

	require.NoError(t, err)
	assert.Equal(t, constvars.InsuranceStatusInactive, patient.InsuranceStatus)
	assert.Equal(t, constvars.InsuranceProviderNone, patient.InsuranceProvider)
	assert.Equal(t, constvars.PatientStatusActive, patient.Status)
	assert.Equal(t, "worker-1", patient.AssignedWorker)
	assert.Equal(t, 34, patient.Age)
	assert.Empty(t, patient.Visits)
	assert.NotNil(t, patient.Payments)
	assert.Equal(t, fixedNow, patient.CreatedAt)
	repo.AssertNotCalled(t, "FindByNationalID", mock.Anything, mock.Anything)
}

func TestPatientUsecase_CreatePatient_KeepsSuppliedStatus(t *testing.T) {
	repo := new(mocks.PatientRepository)
	repo.On("FindByNationalID", mock.Anything, "12345678").Return(nil, nil)
	repo.On("CreatePatient", mock.Anything, mock.AnythingOfType("*models.Patient")).Return(primitive.NewObjectID().Hex(), nil)

	patient, err := newTestPatientUsecase(repo).CreatePatient(context.Background(), &requests.CreatePatient{
		Name:              "Otieno",
		Age:               intPtr(60),
		NationalID:        " 12345678 ",
		Sickness:          "Hypertension",
		InsuranceProvider: constvars.InsuranceProviderSHA,
		InsuranceStatus:   constvars.InsuranceStatusActive,
		Status:            constvars.PatientStatusReferred,
	})

	require.NoError(t, err)
	assert.Equal(t, "12345678", patient.NationalID)
	assert.Equal(t, constvars.InsuranceStatusActive, patient.InsuranceStatus)
	assert.Equal(t, constvars.PatientStatusReferred, patient.Status)
}

func TestPatientUsecase_CreatePatient_DuplicateNationalID(t *testing.T) {
	repo := new(mocks.PatientRepository)
	repo.On("FindByNationalID", mock.Anything, "12345678").Return(&models.Patient{ID: primitive.NewObjectID(), NationalID: "12345678"}, nil)

	_, err := newTestPatientUsecase(repo).CreatePatient(context.Background(), &requests.CreatePatient{
		Name:       "Second",
		Age:        intPtr(20),
		NationalID: "12345678",
		Sickness:   "Flu",
	})

	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	require.Len(t, customErr.Errors, 1)
	assert.Equal(t, "nationalId", customErr.Errors[0].Field)
	repo.AssertNotCalled(t, "CreatePatient", mock.Anything, mock.Anything)
}

func TestPatientUsecase_GetPatientByID_NotFound(t *testing.T) {
	repo := new(mocks.PatientRepository)
	repo.On("FindByID", mock.Anything, "65f0c1d2e3f4a5b6c70f1a2b").Return(nil, nil)

	_, err := newTestPatientUsecase(repo).GetPatientByID(context.Background(), "65f0c1d2e3f4a5b6c70f1a2b")

	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
}

func TestPatientUsecase_UpdatePatient_RejectsNationalIDOfAnotherPatient(t *testing.T) {
	patientID := primitive.NewObjectID()
	repo := new(mocks.PatientRepository)
	repo.On("FindByID", mock.Anything, patientID.Hex()).Return(&models.Patient{ID: patientID}, nil)
	repo.On("FindByNationalID", mock.Anything, "999").Return(&models.Patient{ID: primitive.NewObjectID()}, nil)

	_, err := newTestPatientUsecase(repo).UpdatePatient(context.Background(), patientID.Hex(), &requests.UpdatePatient{NationalID: strPtr("999")})

	assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
	repo.AssertNotCalled(t, "UpdatePatient", mock.Anything, mock.Anything, mock.Anything)
}

func TestPatientUsecase_UpdatePatient(t *testing.T) {
	patientID := primitive.NewObjectID()
	repo := new(mocks.PatientRepository)
	repo.On("FindByID", mock.Anything, patientID.Hex()).Return(&models.Patient{ID: patientID, NationalID: "111"}, nil)
	repo.On("UpdatePatient", mock.Anything, patientID.Hex(), mock.MatchedBy(func(update bson.M) bool {
		set := update["$set"].(bson.M)
		return set[constvars.MongoFieldStatus] == constvars.PatientStatusRecovered && set[constvars.MongoFieldNationalID] == "111"
	})).Return(&models.Patient{ID: patientID, Status: constvars.PatientStatusRecovered}, nil)

	patient, err := newTestPatientUsecase(repo).UpdatePatient(context.Background(), patientID.Hex(), &requests.UpdatePatient{
		Status:     strPtr(constvars.PatientStatusRecovered),
		NationalID: strPtr("111"),
	})

	require.NoError(t, err)
	assert.Equal(t, constvars.PatientStatusRecovered, patient.Status)
	repo.AssertNotCalled(t, "FindByNationalID", mock.Anything, mock.Anything)
}

func TestPatientUsecase_AddVisit(t *testing.T) {
	patientID := primitive.NewObjectID()
	cost := 250.0
	repo := new(mocks.PatientRepository)
	repo.On("PushVisit", mock.Anything, patientID.Hex(), mock.MatchedBy(func(visit *models.Visit) bool {
		return visit.AttendedBy == "nurse-1" && visit.Date.Equal(fixedNow) && visit.Purpose == "Follow-up" && *visit.Cost == cost
	})).Return(&models.Patient{ID: patientID, Visits: []models.Visit{{Purpose: "Follow-up"}}}, nil)

	ctx := utils.ContextWithCaller(context.Background(), &models.Caller{UserID: "nurse-1", Role: constvars.RoleNurse})
	patient, err := newTestPatientUsecase(repo).AddVisit(ctx, patientID.Hex(), &requests.AddVisit{
		Purpose:   "Follow-up",
		Diagnosis: "Recovering",
		Cost:      &cost,
	})

	require.NoError(t, err)
	assert.Len(t, patient.Visits, 1)
	repo.AssertExpectations(t)
}

func TestPatientUsecase_AddVisit_PatientMissing(t *testing.T) {
	repo := new(mocks.PatientRepository)
	repo.On("PushVisit", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	_, err := newTestPatientUsecase(repo).AddVisit(context.Background(), primitive.NewObjectID().Hex(), &requests.AddVisit{Purpose: "x", Diagnosis: "y"})

	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
}

func TestPatientUsecase_DeletePatient(t *testing.T) {
	repo := new(mocks.PatientRepository)
	repo.On("DeleteByID", mock.Anything, "present").Return(true, nil)
	repo.On("DeleteByID", mock.Anything, "absent").Return(false, nil)

	usecase := newTestPatientUsecase(repo)
	assert.NoError(t, usecase.DeletePatient(context.Background(), "present"))
	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(usecase.DeletePatient(context.Background(), "absent")))
}

func TestBuildPatientUpdate(t *testing.T) {
	update := BuildPatientUpdate(&requests.UpdatePatient{
		Name:       strPtr("New Name"),
		Age:        intPtr(41),
		NationalID: strPtr(""),
	}, fixedNow)

	set := update["$set"].(bson.M)
	assert.Equal(t, "New Name", set[constvars.MongoFieldName])
	assert.Equal(t, 41, set["age"])
	assert.Equal(t, fixedNow, set[constvars.MongoFieldUpdatedAt])
	assert.NotContains(t, set, constvars.MongoFieldVisits)
	assert.NotContains(t, set, constvars.MongoFieldPayments)
	assert.Equal(t, bson.M{constvars.MongoFieldNationalID: ""}, update["$unset"])
}

func TestBuildPatientUpdate_NoUnsetWhenNationalIDAbsent(t *testing.T) {
	update := BuildPatientUpdate(&requests.UpdatePatient{Status: strPtr(constvars.PatientStatusDeceased)}, fixedNow)
	assert.NotContains(t, update, "$unset")
}

func TestBuildPatientFilter(t *testing.T) {
	assert.Empty(t, BuildPatientFilter(nil))

	query := BuildPatientFilter(&requests.PatientFilter{
		Status:            constvars.PatientStatusActive,
		InsuranceProvider: constvars.InsuranceProviderNSSF,
		Search:            " +2547 ",
	})

	assert.Equal(t, constvars.PatientStatusActive, query[constvars.MongoFieldStatus])
	assert.Equal(t, constvars.InsuranceProviderNSSF, query[constvars.MongoFieldInsuranceProvider])
	or := query["$or"].([]bson.M)
	require.Len(t, or, 3)
	assert.Equal(t, primitive.Regex{Pattern: `\+2547`, Options: "i"}, or[0][constvars.MongoFieldName])
}
