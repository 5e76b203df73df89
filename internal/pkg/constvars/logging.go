package constvars

const (
	LoggingRequestIDKey         = "request_id"
	LoggingEndpointKey          = "endpoint"
	LoggingMethodKey            = "method"
	LoggingRemoteAddrKey        = "remote_addr"
	LoggingUserAgentKey         = "user_agent"
	LoggingQueryKey             = "query"
	LoggingStatusCodeKey        = "status_code"
	LoggingDurationKey          = "duration"
	LoggingSuccessKey           = "success"
	LoggingErrorTypeKey         = "error_type"
	LoggingPatientIDKey         = "patient_id"
	LoggingPaymentIDKey         = "payment_id"
	LoggingTransactionIDKey     = "transaction_id"
	LoggingClaimNumberKey       = "claim_number"
	LoggingPaymentMethodKey     = "payment_method"
	LoggingPaymentStatusKey     = "payment_status"
	LoggingResultCodeKey        = "result_code"
	LoggingUserIDKey            = "user_id"
	LoggingRoleKey              = "role"
	LoggingOperationKey         = "operation"
	LoggingRedisKey             = "redis_key"
	LoggingLockValueKey         = "lock_value"
	LoggingLockExpirationKey    = "lock_expiration"
	LoggingQueueKey             = "queue"
	LoggingEventTypeKey         = "event_type"
	LoggingBucketKey            = "bucket"
	LoggingObjectKey            = "object_key"
	LoggingCountKey             = "count"
	LoggingRepairedCountKey     = "repaired_count"
	LoggingGatewayResponseKey   = "gateway_response"
	LoggingCheckoutRequestIDKey = "checkout_request_id"
	LoggingServiceKey           = "service"
	LoggingVersionKey           = "version"
	LoggingEnvKey               = "env"
)
