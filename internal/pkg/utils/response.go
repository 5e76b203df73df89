package utils

import (
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var appEnvironment = constvars.AppEnvDevelopment

// SetAppEnvironment controls whether developer detail is written to error responses.
func SetAppEnvironment(env string) {
	appEnvironment = env
}

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func BuildSuccessResponseWithCount(w http.ResponseWriter, code int, message string, count int, data interface{}) {
	writeJSON(w, code, responses.ResponseDTO{
		Success: true,
		Message: message,
		Count:   &count,
		Data:    data,
	})
}

func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	code := constvars.StatusInternalServerError
	response := exceptions.CustomError{
		StatusCode:    code,
		ClientMessage: constvars.ErrClientSomethingWrongWithApplication,
	}

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		code = customErr.StatusCode
		response.StatusCode = code
		response.ClientMessage = customErr.ClientMessage
		response.Errors = customErr.Errors
		response.Payload = customErr.Payload

		fields := make([]zap.Field, 0, len(customErr.Locations)+1)
		fields = append(fields, zap.Int(constvars.LoggingStatusCodeKey, code))
		for _, location := range customErr.Locations {
			fields = append(fields, zap.Any("location", location))
		}
		if code >= constvars.StatusInternalServerError {
			log.Error(customErr.DevMessage, fields...)
		} else {
			log.Warn(customErr.DevMessage, fields...)
		}

		if appEnvironment != constvars.AppEnvProduction {
			response.DevMessage = customErr.DevMessage
			response.Locations = customErr.Locations
		}
	} else {
		log.Error(err.Error())
	}

	writeJSON(w, code, response)
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
