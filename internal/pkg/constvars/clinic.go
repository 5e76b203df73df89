package constvars

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

const (
	PatientStatusActive    = "active"
	PatientStatusRecovered = "recovered"
	PatientStatusReferred  = "referred"
	PatientStatusDeceased  = "deceased"
)

const (
	InsuranceProviderNSSF    = "NSSF"
	InsuranceProviderSHA     = "SHA"
	InsuranceProviderPrivate = "Private"
	InsuranceProviderNone    = "None"
)

const (
	InsuranceStatusActive   = "active"
	InsuranceStatusInactive = "inactive"
	InsuranceStatusPending  = "pending"
)

const (
	PaymentMethodMpesa     = "mpesa"
	PaymentMethodCash      = "cash"
	PaymentMethodInsurance = "insurance"
	PaymentMethodCard      = "card"
)

const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// Mocked provider coverage returned by the verification endpoints.
const (
	NSSFMockCoverageAmount = 50000
	SHAMockTier            = "Basic"
	SHAMockFacilities      = "Level 1-5 facilities"
	CoverageCovered        = "Covered"
	CoverageLimited        = "Limited"
	CoverageValidityDays   = 365
)

const (
	EventPaymentCreated   = "payment.created"
	EventPaymentCompleted = "payment.completed"
	EventPaymentFailed    = "payment.failed"
)

const (
	SessionRedisKeyPrefix     = "session:"
	ReconcilerLockKey         = "lock:payments:reconciler"
	ClaimDocumentObjectPrefix = "claims"
	ClaimDocumentContentType  = "application/octet-stream"
	HealthStatusOK            = "OK"
)
