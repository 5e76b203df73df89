package contracts

import (
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"context"
)

type InsuranceUsecase interface {
	SubmitClaim(ctx context.Context, request *requests.SubmitClaim) (*responses.ClaimSubmission, error)
	GetClaimStatus(ctx context.Context, claimNumber string) (*responses.ClaimStatus, error)
	GetPatientInsurance(ctx context.Context, patientID string) (*responses.PatientInsurance, error)
	VerifyNSSF(ctx context.Context, request *requests.VerifyNSSF) (*responses.NSSFVerification, error)
	VerifySHA(ctx context.Context, request *requests.VerifySHA) (*responses.SHAVerification, error)
}
