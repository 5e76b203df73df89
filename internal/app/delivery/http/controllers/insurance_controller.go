package controllers

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type InsuranceController struct {
	Log              *zap.Logger
	InsuranceUsecase contracts.InsuranceUsecase
}

func NewInsuranceController(logger *zap.Logger, insuranceUsecase contracts.InsuranceUsecase) *InsuranceController {
	return &InsuranceController{
		Log:              logger,
		InsuranceUsecase: insuranceUsecase,
	}
}

func (ctrl *InsuranceController) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.SubmitClaim)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	result, err := ctrl.InsuranceUsecase.SubmitClaim(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ClaimSubmittedSuccessMessage, result)
}

func (ctrl *InsuranceController) GetClaimStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := requestIDFrom(ctrl.Log, w, r); !ok {
		return
	}

	status, err := ctrl.InsuranceUsecase.GetClaimStatus(r.Context(), chi.URLParam(r, constvars.URLParamClaimNumber))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, "", status)
}

func (ctrl *InsuranceController) GetPatientInsurance(w http.ResponseWriter, r *http.Request) {
	if _, ok := requestIDFrom(ctrl.Log, w, r); !ok {
		return
	}

	insurance, err := ctrl.InsuranceUsecase.GetPatientInsurance(r.Context(), chi.URLParam(r, constvars.URLParamPatientID))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, "", insurance)
}

func (ctrl *InsuranceController) VerifyNSSF(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.VerifyNSSF)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	result, err := ctrl.InsuranceUsecase.VerifyNSSF(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.NSSFVerifiedSuccessMessage, result)
}

func (ctrl *InsuranceController) VerifySHA(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.VerifySHA)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	result, err := ctrl.InsuranceUsecase.VerifySHA(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SHAVerifiedSuccessMessage, result)
}
