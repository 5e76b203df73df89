package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildSuccessResponseWithCount(t *testing.T) {
	rec := httptest.NewRecorder()
	BuildSuccessResponseWithCount(rec, http.StatusOK, "", 0, []string{})

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, constvars.MIMEApplicationJSON, rec.Header().Get(constvars.HeaderContentType))
}

func TestBuildErrorResponse(t *testing.T) {
	t.Run("custom error carries status and provider payload", func(t *testing.T) {
		rec := httptest.NewRecorder()
		payload := map[string]interface{}{"errorCode": "404.001.03"}
		BuildErrorResponse(zap.NewNop(), rec, exceptions.ErrGatewaySTKPush(nil).WithPayload(payload))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, constvars.ErrClientPaymentGateway, body["message"])
		assert.Equal(t, payload, body["error"])
	})

	t.Run("foreign error maps to internal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		BuildErrorResponse(zap.NewNop(), rec, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), constvars.ErrClientSomethingWrongWithApplication)
	})

	t.Run("production hides developer detail", func(t *testing.T) {
		SetAppEnvironment(constvars.AppEnvProduction)
		defer SetAppEnvironment(constvars.AppEnvDevelopment)

		rec := httptest.NewRecorder()
		BuildErrorResponse(zap.NewNop(), rec, exceptions.ErrPatientNotFound(nil, "abc"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NotContains(t, rec.Body.String(), "dev_message")
		assert.NotContains(t, rec.Body.String(), "locations")
	})
}
