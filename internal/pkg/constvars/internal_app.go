package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_CALLER_KEY               ContextKey = "caller"
	CONTEXT_SESSION_ID_KEY           ContextKey = "session_id"
)

const ServiceName = "clinic-service"

const (
	AppEnvProduction  = "production"
	AppEnvDevelopment = "development"
)

const (
	URLParamID          = "id"
	URLParamPatientID   = "patientId"
	URLParamClaimNumber = "claimNumber"
)

const (
	QueryParamStatus            = "status"
	QueryParamInsuranceProvider = "insuranceProvider"
	QueryParamSearch            = "search"
	QueryParamPatientID         = "patientId"
	QueryParamPaymentMethod     = "paymentMethod"
	QueryParamCallbackToken     = "token"
)
