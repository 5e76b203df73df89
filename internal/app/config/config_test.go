package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInternalConfig_Defaults(t *testing.T) {
	cfg, err := NewInternalConfig()
	require.NoError(t, err)

	assert.Equal(t, "/api", cfg.App.EndpointPrefix)
	assert.Equal(t, "payment_events", cfg.RabbitMQ.PaymentEventsQueue)
	assert.Equal(t, "@every 15m", cfg.Reconciler.CronSpec)
	assert.Equal(t, "CustomerPayBillOnline", cfg.Mpesa.TransactionType)
}

func TestNewInternalConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("MPESA_SHORT_CODE", "174379")
	t.Setenv("MPESA_CALLBACK_TOKEN", "s3cret")
	t.Setenv("MONGODB_TRANSACTIONS_ENABLED", "true")
	t.Setenv("RECONCILER_LOOKBACK_HOURS", "6")
	t.Setenv("APP_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := NewInternalConfig()
	require.NoError(t, err)

	assert.Equal(t, "174379", cfg.Mpesa.ShortCode)
	assert.Equal(t, "s3cret", cfg.Mpesa.CallbackToken)
	assert.True(t, cfg.MongoDB.TransactionsEnabled)
	assert.Equal(t, 6, cfg.Reconciler.LookbackHours)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

func TestInternalConfig_MpesaConfigured(t *testing.T) {
	cfg := &InternalConfig{}
	assert.False(t, cfg.MpesaConfigured())

	cfg.Mpesa = AppMpesa{
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		ShortCode:      "174379",
		Passkey:        "passkey",
		CallbackURL:    "https://clinic.example/api/payments/mpesa/callback",
	}
	assert.True(t, cfg.MpesaConfigured())
}

func TestNewDriverConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := NewDriverConfig()
	require.NoError(t, err)

	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.True(t, cfg.Minio.UseSSL)
	assert.Equal(t, "27017", cfg.MongoDB.Port)
}
