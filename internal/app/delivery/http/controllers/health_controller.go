package controllers

import (
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/utils"
	"net/http"
	"time"
)

type HealthController struct {
	Now func() time.Time
}

func NewHealthController() *HealthController {
	return &HealthController{Now: time.Now}
}

func (ctrl *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, "", responses.Health{
		Status:    constvars.HealthStatusOK,
		Message:   constvars.HealthCheckMessage,
		Timestamp: ctrl.Now().UTC(),
	})
}
