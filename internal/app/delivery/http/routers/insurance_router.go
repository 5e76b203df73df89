package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachInsuranceRoutes(router chi.Router, middlewares *middlewares.Middlewares, insuranceController *controllers.InsuranceController) {
	router.Use(middlewares.Authenticate)

	router.With(middlewares.RequirePermission(constvars.OperationInsuranceClaim)).Post("/claim", insuranceController.SubmitClaim)
	router.With(middlewares.RequirePermission(constvars.OperationInsuranceRead)).Get("/claim-status/{claimNumber}", insuranceController.GetClaimStatus)
	router.With(middlewares.RequirePermission(constvars.OperationInsuranceRead)).Get("/patient/{patientId}", insuranceController.GetPatientInsurance)
	router.With(middlewares.RequirePermission(constvars.OperationInsuranceVerify)).Post("/verify-nssf", insuranceController.VerifyNSSF)
	router.With(middlewares.RequirePermission(constvars.OperationInsuranceVerify)).Post("/verify-sha", insuranceController.VerifySHA)
}
