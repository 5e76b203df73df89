package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, middlewares *middlewares.Middlewares, patientController *controllers.PatientController) {
	router.Use(middlewares.Authenticate)

	router.With(middlewares.RequirePermission(constvars.OperationPatientCreate)).Post("/", patientController.CreatePatient)
	router.With(middlewares.RequirePermission(constvars.OperationPatientRead)).Get("/", patientController.ListPatients)
	router.With(middlewares.RequirePermission(constvars.OperationPatientRead)).Get("/{id}", patientController.GetPatient)
	router.With(middlewares.RequirePermission(constvars.OperationPatientUpdate)).Put("/{id}", patientController.UpdatePatient)
	router.With(middlewares.RequirePermission(constvars.OperationPatientDelete)).Delete("/{id}", patientController.DeletePatient)
	router.With(middlewares.RequirePermission(constvars.OperationVisitCreate)).Post("/{id}/visits", patientController.AddVisit)
}
