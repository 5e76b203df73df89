package constvars

const (
	ResponseUnknown = "unknown"
)

const (
	PatientRegisteredSuccessMessage   = "Patient registered successfully"
	PatientUpdatedSuccessMessage      = "Patient updated successfully"
	PatientDeletedSuccessMessage      = "Patient deleted successfully"
	VisitAddedSuccessMessage          = "Visit record added successfully"
	STKPushInitiatedSuccessMessage    = "STK Push initiated successfully"
	CashPaymentRecordedSuccessMessage = "Cash payment recorded successfully"
	ClaimSubmittedSuccessMessage      = "Insurance claim submitted successfully"
	NSSFVerifiedSuccessMessage        = "NSSF membership verified successfully"
	SHAVerifiedSuccessMessage         = "SHA coverage verified successfully"
	CallbackAcknowledgedMessage       = "Callback acknowledged"
	RegisterSuccessMessage            = "User registered successfully"
	LoginSuccessMessage               = "Login successful"
	LogoutSuccessMessage              = "Logout successful"
	HealthCheckMessage                = "Community Health Service API is running"
	ClaimRemarkPending                = "Claim is being reviewed"
	ClaimRemarkProcessed              = "Claim processed"
	ClaimEstimatedProcessingTime      = "5-7 business days"
)

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":     "is required",
	"email":        "must be a valid email",
	"min":          "must be at least %s",
	"max":          "must be at most %s",
	"oneof":        "must be one of [%s]",
	"gt":           "must be greater than %s",
	"gte":          "must be greater than or equal to %s",
	"lte":          "must be less than or equal to %s",
	"required_if":  "is required when %s",
	"base64":       "must be a valid base64 string",
	"phone_number": "must be a valid phone number",
	"password":     "must be at least 8 characters long",
	"object_id":    "must be a valid identifier",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":         true,
	"max":         true,
	"oneof":       true,
	"gt":          true,
	"gte":         true,
	"lte":         true,
	"required_if": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidEmailOrPassword        = "invalid email or password"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientValidationFailed              = "validation failed"
	ErrClientPatientNotFound               = "Patient not found"
	ErrClientPaymentNotFound               = "Payment not found"
	ErrClientClaimNotFound                 = "Claim not found"
	ErrClientNationalIDAlreadyExists       = "a patient with this national ID already exists"
	ErrClientNoActiveInsurance             = "Patient does not have active insurance coverage"
	ErrClientPaymentGateway                = "Error initiating M-Pesa payment"
	ErrClientInvalidPaymentTransition      = "payment cannot change to the requested status"
	ErrClientTooManyRequests               = "too many requests, please slow down"
)

// Error messages for developers
const (
	ErrDevValidationFailed           = "request validation failed"
	ErrDevCannotParseJSON            = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON          = "cannot convert struct or other data types to JSON"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevServerProcess              = "server failed to process the request"
	ErrDevMissingRequestID           = "request ID missing from context"
	ErrDevAuthTokenMissing           = "authorization token missing"
	ErrDevAuthTokenInvalid           = "authorization token invalid"
	ErrDevAuthSigningMethod          = "unexpected token signing method"
	ErrDevAuthSessionNotFound        = "session not found or expired"
	ErrDevAuthCallerMissing          = "caller identity missing from context"
	ErrDevAuthInvalidCredentials     = "invalid email or password"
	ErrDevAuthEmailAlreadyExists     = "email already registered"
	ErrDevAuthCallbackTokenMismatch  = "callback token mismatch"
	ErrDevFailedToHashPassword       = "failed to hash password"
	ErrDevForbiddenOperation         = "role %s is not permitted to perform %s"
	ErrDevPolicyEvaluation           = "failed to evaluate authorization policy"
	ErrDevPatientNotFound            = "patient %s not found"
	ErrDevPaymentNotFound            = "payment %s not found"
	ErrDevClaimNotFound              = "claim %s not found"
	ErrDevNationalIDAlreadyExists    = "national ID %s already registered"
	ErrDevNoActiveInsurance          = "patient %s has no active insurance coverage"
	ErrDevInvalidPaymentTransition   = "payment cannot transition from %s to %s"
	ErrDevGatewayAccessToken         = "failed to get M-Pesa access token"
	ErrDevGatewaySTKPush             = "failed to submit STK push request"
	ErrDevGatewayNotConfigured       = "mobile money gateway is not configured"
	ErrDevDBFailedToFindDocument     = "failed to find document"
	ErrDevDBFailedToInsertDocument   = "failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "failed to update document"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBTransaction              = "failed to commit multi-document transaction"
	ErrDevRedisGetData               = "failed to get data from redis"
	ErrDevRedisSetData               = "failed to set data to redis"
	ErrDevRedisDeleteData            = "failed to delete data from redis"
	ErrDevRedisUnlock                = "failed to release redis lock"
	ErrDevRabbitMQPublishMessage     = "failed to publish message to queue %s"
	ErrDevMinioFailedToCreateObject  = "failed to create object in bucket %s"
	ErrDevMinioFailedToRemoveObject  = "failed to remove object from bucket %s"
	ErrDevCreateHTTPRequest          = "failed to create HTTP request"
	ErrDevDecodeBase64               = "failed to decode base64 document"
	ErrDevDocumentTooLarge           = "document %d exceeds the %d MB limit"
	ErrDevRateLimitExceeded          = "rate limit exceeded"
)
