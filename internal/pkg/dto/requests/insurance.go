package requests

type SubmitClaim struct {
	PatientID          string   `json:"patientId" validate:"required,object_id"`
	Amount             float64  `json:"amount" validate:"required,gte=1"`
	ServiceDescription string   `json:"serviceDescription" validate:"required"`
	Documents          []string `json:"documents" validate:"omitempty,dive,base64"`
}

type VerifyNSSF struct {
	PatientID string `json:"patientId" validate:"required,object_id"`
	MemberID  string `json:"memberId" validate:"required"`
}

type VerifySHA struct {
	PatientID string `json:"patientId" validate:"required,object_id"`
	SHANumber string `json:"shaNumber" validate:"required"`
}
