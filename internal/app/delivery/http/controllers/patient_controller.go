package controllers

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PatientController struct {
	Log            *zap.Logger
	PatientUsecase contracts.PatientUsecase
}

func NewPatientController(logger *zap.Logger, patientUsecase contracts.PatientUsecase) *PatientController {
	return &PatientController{
		Log:            logger,
		PatientUsecase: patientUsecase,
	}
}

func (ctrl *PatientController) CreatePatient(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, ok := requestIDFrom(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.CreatePatient)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	patient, err := ctrl.PatientUsecase.CreatePatient(r.Context(), request)
	if err != nil {
		ctrl.Log.Error("Failed to create patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PatientRegisteredSuccessMessage, patient)
}

func (ctrl *PatientController) ListPatients(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := &requests.PatientFilter{
		Status:            query.Get(constvars.QueryParamStatus),
		InsuranceProvider: query.Get(constvars.QueryParamInsuranceProvider),
		Search:            query.Get(constvars.QueryParamSearch),
	}
	if !validate(ctrl.Log, w, requestID, filter) {
		return
	}

	patients, err := ctrl.PatientUsecase.ListPatients(r.Context(), filter)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponseWithCount(w, constvars.StatusOK, "", len(patients), patients)
}

func (ctrl *PatientController) GetPatient(w http.ResponseWriter, r *http.Request) {
	if _, ok := requestIDFrom(ctrl.Log, w, r); !ok {
		return
	}

	patient, err := ctrl.PatientUsecase.GetPatientByID(r.Context(), chi.URLParam(r, constvars.URLParamID))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, "", patient)
}

func (ctrl *PatientController) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.UpdatePatient)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	patient, err := ctrl.PatientUsecase.UpdatePatient(r.Context(), chi.URLParam(r, constvars.URLParamID), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientUpdatedSuccessMessage, patient)
}

func (ctrl *PatientController) AddVisit(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.AddVisit)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	patient, err := ctrl.PatientUsecase.AddVisit(r.Context(), chi.URLParam(r, constvars.URLParamID), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.VisitAddedSuccessMessage, patient)
}

func (ctrl *PatientController) DeletePatient(w http.ResponseWriter, r *http.Request) {
	if _, ok := requestIDFrom(ctrl.Log, w, r); !ok {
		return
	}

	if err := ctrl.PatientUsecase.DeletePatient(r.Context(), chi.URLParam(r, constvars.URLParamID)); err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientDeletedSuccessMessage, nil)
}
