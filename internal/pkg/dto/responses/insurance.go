package responses

import (
	"clinic-service/internal/app/models"
	"time"
)

type ClaimSummary struct {
	ClaimNumber             string    `json:"claimNumber"`
	Status                  string    `json:"status"`
	SubmittedDate           time.Time `json:"submittedDate"`
	Provider                string    `json:"provider"`
	RequestedAmount         float64   `json:"requestedAmount"`
	EstimatedProcessingTime string    `json:"estimatedProcessingTime"`
}

type ClaimSubmission struct {
	Claim   ClaimSummary    `json:"claim"`
	Payment *models.Payment `json:"payment"`
}

type ClaimStatus struct {
	ClaimNumber     string    `json:"claimNumber"`
	Status          string    `json:"status"`
	Provider        string    `json:"provider"`
	RequestedAmount float64   `json:"requestedAmount"`
	ApprovedAmount  float64   `json:"approvedAmount"`
	LastUpdated     time.Time `json:"lastUpdated"`
	Remarks         string    `json:"remarks"`
}

type PatientInsurance struct {
	InsuranceProvider string `json:"insuranceProvider"`
	InsuranceNumber   string `json:"insuranceNumber,omitempty"`
	InsuranceStatus   string `json:"insuranceStatus"`
}

type NSSFVerification struct {
	IsValid        bool      `json:"isValid"`
	MemberName     string    `json:"memberName"`
	MemberID       string    `json:"memberId"`
	Status         string    `json:"status"`
	CoverageAmount float64   `json:"coverageAmount"`
	ExpiryDate     time.Time `json:"expiryDate"`
}

type SHAVerification struct {
	IsValid         bool              `json:"isValid"`
	MemberName      string            `json:"memberName"`
	SHANumber       string            `json:"shaNumber"`
	Status          string            `json:"status"`
	Tier            string            `json:"tier"`
	CoverageDetails SHACoverageDetail `json:"coverageDetails"`
	Facilities      []string          `json:"facilities"`
	ExpiryDate      time.Time         `json:"expiryDate"`
}

type SHACoverageDetail struct {
	Outpatient string `json:"outpatient"`
	Inpatient  string `json:"inpatient"`
	Maternity  string `json:"maternity"`
	Dental     string `json:"dental"`
}
