package config

type InternalConfig struct {
	App        App           `mapstructure:"app"`
	JWT        AppJWT        `mapstructure:"jwt"`
	Mpesa      AppMpesa      `mapstructure:"mpesa"`
	MongoDB    AppMongoDB    `mapstructure:"mongodb"`
	RabbitMQ   AppRabbitMQ   `mapstructure:"rabbitmq"`
	Minio      AppMinio      `mapstructure:"minio"`
	Reconciler AppReconciler `mapstructure:"reconciler"`
}

type App struct {
	Env                        string `mapstructure:"env"`
	Port                       string `mapstructure:"port"`
	Version                    string `mapstructure:"version"`
	Address                    string `mapstructure:"address"`
	Timezone                   string `mapstructure:"timezone"`
	EndpointPrefix             string `mapstructure:"endpoint_prefix"`
	CORSAllowedOrigins         string `mapstructure:"cors_allowed_origins"`
	MaxRequests                int    `mapstructure:"max_requests"`
	MaxTimeRequestsPerSeconds  int    `mapstructure:"max_time_requests_per_seconds"`
	ShutdownTimeoutInSeconds   int    `mapstructure:"shutdown_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int    `mapstructure:"request_body_limit_in_megabyte"`
	RequestTimeoutInSeconds    int    `mapstructure:"request_timeout_in_seconds"`
}

type AppJWT struct {
	Secret        string `mapstructure:"secret"`
	ExpTimeInHour int    `mapstructure:"exp_time_in_hour"`
}

// AppMpesa holds the Daraja credentials and the callback settings.
type AppMpesa struct {
	BaseUrl                 string `mapstructure:"base_url"`
	ConsumerKey             string `mapstructure:"consumer_key"`
	ConsumerSecret          string `mapstructure:"consumer_secret"`
	ShortCode               string `mapstructure:"short_code"`
	Passkey                 string `mapstructure:"passkey"`
	CallbackURL             string `mapstructure:"callback_url"`
	CallbackToken           string `mapstructure:"callback_token"`
	TransactionType         string `mapstructure:"transaction_type"`
	RequestsPerSecond       int    `mapstructure:"requests_per_second"`
	RequestTimeoutInSeconds int    `mapstructure:"request_timeout_in_seconds"`
	// PhoneSTKPushLimitPerMinute caps prompts sent to a single payer phone.
	PhoneSTKPushLimitPerMinute int `mapstructure:"phone_stk_push_limit_per_minute"`
}

type AppMongoDB struct {
	DbName              string `mapstructure:"db_name"`
	TransactionsEnabled bool   `mapstructure:"transactions_enabled"`
}

type AppRabbitMQ struct {
	PaymentEventsQueue string `mapstructure:"payment_events_queue"`
}

type AppMinio struct {
	ClaimDocumentsBucket     string `mapstructure:"claim_documents_bucket"`
	ClaimDocumentMaxSizeInMB int    `mapstructure:"claim_document_max_size_in_mb"`
}

// AppReconciler configures the payment reference repair worker.
type AppReconciler struct {
	Enabled                 bool   `mapstructure:"enabled"`
	CronSpec                string `mapstructure:"cron_spec"`
	LookbackHours           int    `mapstructure:"lookback_hours"`
	LockExpirationInSeconds int    `mapstructure:"lock_expiration_in_seconds"`
}
