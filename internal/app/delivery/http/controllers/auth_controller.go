package controllers

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type AuthController struct {
	Log         *zap.Logger
	AuthUsecase contracts.AuthUsecase
}

func NewAuthController(logger *zap.Logger, authUsecase contracts.AuthUsecase) *AuthController {
	return &AuthController{
		Log:         logger,
		AuthUsecase: authUsecase,
	}
}

func (ctrl *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.RegisterUser)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}
	if (request.Role == constvars.RoleDoctor || request.Role == constvars.RoleNurse) && request.LicenseNumber == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrValidationMessage("licenseNumber", "License number is required for medical staff"))
		return
	}

	profile, err := ctrl.AuthUsecase.Register(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.RegisterSuccessMessage, profile)
}

func (ctrl *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.LoginUser)
	if !decodeAndValidate(ctrl.Log, w, r, requestID, request) {
		return
	}

	result, err := ctrl.AuthUsecase.Login(r.Context(), request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LoginSuccessMessage, result)
}

func (ctrl *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := requestIDFrom(ctrl.Log, w, r); !ok {
		return
	}

	caller := utils.CallerFromContext(r.Context())
	if caller == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCallerMissing(nil))
		return
	}

	if err := ctrl.AuthUsecase.Logout(r.Context(), caller.SessionID); err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LogoutSuccessMessage, nil)
}

func (ctrl *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	if _, ok := requestIDFrom(ctrl.Log, w, r); !ok {
		return
	}

	caller := utils.CallerFromContext(r.Context())
	if caller == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCallerMissing(nil))
		return
	}

	profile, err := ctrl.AuthUsecase.GetProfile(r.Context(), caller.UserID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, "", profile)
}
