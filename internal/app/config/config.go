package config

import (
	"clinic-service/internal/pkg/constvars"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func init() {
	godotenv.Load()
}

// newViper maps nested keys such as "mpesa.short_code" to MPESA_SHORT_CODE.
func newViper(defaults map[string]interface{}) *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

func NewDriverConfig() (*DriverConfig, error) {
	v := newViper(map[string]interface{}{
		"mongodb.uri":                  "",
		"mongodb.port":                 "27017",
		"mongodb.host":                 "localhost",
		"mongodb.username":             "",
		"mongodb.password":             "",
		"redis.host":                   "localhost",
		"redis.port":                   "6379",
		"redis.password":               "",
		"logger.level":                 "debug",
		"logger.output_filename":       "logger.log",
		"logger.output_error_filename": "logger_error.log",
		"rabbitmq.port":                "5672",
		"rabbitmq.host":                "localhost",
		"rabbitmq.username":            "guest",
		"rabbitmq.password":            "guest",
		"minio.port":                   "9000",
		"minio.host":                   "localhost",
		"minio.username":               "minioadmin",
		"minio.password":               "minioadmin",
		"minio.use_ssl":                false,
	})

	cfg := &DriverConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func NewInternalConfig() (*InternalConfig, error) {
	v := newViper(map[string]interface{}{
		"app.env":                               "development",
		"app.port":                              "5000",
		"app.version":                           "v1.0",
		"app.address":                           "0.0.0.0",
		"app.timezone":                          "Africa/Nairobi",
		"app.endpoint_prefix":                   "/api",
		"app.cors_allowed_origins":              "*",
		"app.max_requests":                      100,
		"app.max_time_requests_per_seconds":     60,
		"app.shutdown_timeout_in_seconds":       10,
		"app.request_body_limit_in_megabyte":    6,
		"app.request_timeout_in_seconds":        30,
		"jwt.secret":                            "",
		"jwt.exp_time_in_hour":                  24,
		"mpesa.base_url":                        "https://sandbox.safaricom.co.ke",
		"mpesa.consumer_key":                    "",
		"mpesa.consumer_secret":                 "",
		"mpesa.short_code":                      "",
		"mpesa.passkey":                         "",
		"mpesa.callback_url":                    "",
		"mpesa.callback_token":                  "",
		"mpesa.transaction_type":                "CustomerPayBillOnline",
		"mpesa.requests_per_second":             5,
		"mpesa.request_timeout_in_seconds":      15,
		"mpesa.phone_stk_push_limit_per_minute": 3,
		"mongodb.db_name":                       "community_health",
		"mongodb.transactions_enabled":          false,
		"rabbitmq.payment_events_queue":         "payment_events",
		"minio.claim_documents_bucket":          "claim-documents",
		"minio.claim_document_max_size_in_mb":   5,
		"reconciler.enabled":                    true,
		"reconciler.cron_spec":                  "@every 15m",
		"reconciler.lookback_hours":             24,
		"reconciler.lock_expiration_in_seconds": 300,
	})

	cfg := &InternalConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *InternalConfig) IsProduction() bool {
	return c.App.Env == constvars.AppEnvProduction
}

// MpesaConfigured reports whether STK push can be attempted.
func (c *InternalConfig) MpesaConfigured() bool {
	m := c.Mpesa
	return m.ConsumerKey != "" && m.ConsumerSecret != "" && m.ShortCode != "" && m.Passkey != "" && m.CallbackURL != ""
}

func (c *InternalConfig) AllowedOrigins() []string {
	origins := strings.Split(c.App.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))
	for _, origin := range origins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
