package constvars

const (
	RoleDoctor          = "doctor"
	RoleNurse           = "nurse"
	RoleAdmin           = "admin"
	RoleCommunityWorker = "community_worker"
)

// Operations guarded by the authorization gate.
const (
	OperationPatientCreate   = "patient:create"
	OperationPatientRead     = "patient:read"
	OperationPatientUpdate   = "patient:update"
	OperationPatientDelete   = "patient:delete"
	OperationVisitCreate     = "visit:create"
	OperationPaymentCreate   = "payment:create"
	OperationPaymentRead     = "payment:read"
	OperationInsuranceClaim  = "insurance:claim"
	OperationInsuranceRead   = "insurance:read"
	OperationInsuranceVerify = "insurance:verify"
)

const AnyAuthenticatedRole = "*"
