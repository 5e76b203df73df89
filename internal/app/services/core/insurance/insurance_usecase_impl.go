package insurance

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"encoding/base64"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type insuranceUsecase struct {
	PatientRepository contracts.PatientRepository
	PaymentRepository contracts.PaymentRepository
	PaymentLedger     contracts.PaymentLedger
	Storage           contracts.Storage
	MinioConfig       config.AppMinio
	Log               *zap.Logger
	Now               func() time.Time
}

func NewInsuranceUsecase(
	patientRepository contracts.PatientRepository,
	paymentRepository contracts.PaymentRepository,
	paymentLedger contracts.PaymentLedger,
	storage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.InsuranceUsecase {
	return &insuranceUsecase{
		PatientRepository: patientRepository,
		PaymentRepository: paymentRepository,
		PaymentLedger:     paymentLedger,
		Storage:           storage,
		MinioConfig:       internalConfig.Minio,
		Log:               logger,
		Now:               time.Now,
	}
}

// SubmitClaim records a pending insurance payment for a patient with active
// coverage. Supporting documents are stored before the payment is written.
func (uc *insuranceUsecase) SubmitClaim(ctx context.Context, request *requests.SubmitClaim) (*responses.ClaimSubmission, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("insuranceUsecase.SubmitClaim called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	patient, err := uc.findPatient(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if !patient.HasActiveInsurance() {
		uc.Log.Warn("insuranceUsecase.SubmitClaim patient has no active insurance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		)
		return nil, exceptions.ErrNoActiveInsurance(nil, request.PatientID)
	}

	now := uc.Now()
	claimNumber, err := utils.GenerateClaimNumber(constvars.ClaimNumberPrefix, now)
	if err != nil {
		return nil, exceptions.ErrServerProcess(err)
	}

	documents, err := uc.storeDocuments(ctx, claimNumber, request.Documents)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		Patient:       patient.ID,
		Amount:        request.Amount,
		PaymentMethod: constvars.PaymentMethodInsurance,
		TransactionID: claimNumber,
		Status:        models.PaymentPending,
		Description:   request.ServiceDescription,
		InsuranceClaim: &models.InsuranceClaim{
			Provider:       patient.InsuranceProvider,
			ClaimNumber:    claimNumber,
			ApprovedAmount: 0,
			Status:         constvars.ClaimStatusPending,
			Documents:      documents,
		},
	}

	if err := uc.PaymentLedger.Record(ctx, payment); err != nil {
		uc.removeDocuments(ctx, claimNumber, documents)
		return nil, err
	}

	uc.Log.Info("insuranceUsecase.SubmitClaim succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClaimNumberKey, claimNumber),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID.Hex()),
	)
	return &responses.ClaimSubmission{
		Claim: responses.ClaimSummary{
			ClaimNumber:             claimNumber,
			Status:                  constvars.ClaimStatusPending,
			SubmittedDate:           now,
			Provider:                patient.InsuranceProvider,
			RequestedAmount:         request.Amount,
			EstimatedProcessingTime: constvars.ClaimEstimatedProcessingTime,
		},
		Payment: payment,
	}, nil
}

func (uc *insuranceUsecase) GetClaimStatus(ctx context.Context, claimNumber string) (*responses.ClaimStatus, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("insuranceUsecase.GetClaimStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClaimNumberKey, claimNumber),
	)

	payment, err := uc.PaymentRepository.FindByClaimNumber(ctx, claimNumber)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.InsuranceClaim == nil {
		return nil, exceptions.ErrClaimNotFound(nil, claimNumber)
	}

	remarks := constvars.ClaimRemarkProcessed
	if payment.InsuranceClaim.Status == constvars.ClaimStatusPending {
		remarks = constvars.ClaimRemarkPending
	}

	return &responses.ClaimStatus{
		ClaimNumber:     claimNumber,
		Status:          payment.InsuranceClaim.Status,
		Provider:        payment.InsuranceClaim.Provider,
		RequestedAmount: payment.Amount,
		ApprovedAmount:  payment.InsuranceClaim.ApprovedAmount,
		LastUpdated:     payment.UpdatedAt,
		Remarks:         remarks,
	}, nil
}

func (uc *insuranceUsecase) GetPatientInsurance(ctx context.Context, patientID string) (*responses.PatientInsurance, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("insuranceUsecase.GetPatientInsurance called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	patient, err := uc.findPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return &responses.PatientInsurance{
		InsuranceProvider: patient.InsuranceProvider,
		InsuranceNumber:   patient.InsuranceNumber,
		InsuranceStatus:   patient.InsuranceStatus,
	}, nil
}

// VerifyNSSF marks the patient as covered by NSSF. Provider lookup is mocked.
func (uc *insuranceUsecase) VerifyNSSF(ctx context.Context, request *requests.VerifyNSSF) (*responses.NSSFVerification, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("insuranceUsecase.VerifyNSSF called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	patient, err := uc.activateCoverage(ctx, request.PatientID, constvars.InsuranceProviderNSSF, request.MemberID)
	if err != nil {
		return nil, err
	}

	return &responses.NSSFVerification{
		IsValid:        true,
		MemberName:     patient.Name,
		MemberID:       request.MemberID,
		Status:         constvars.InsuranceStatusActive,
		CoverageAmount: constvars.NSSFMockCoverageAmount,
		ExpiryDate:     uc.coverageExpiry(),
	}, nil
}

// VerifySHA marks the patient as covered by SHA. Provider lookup is mocked.
func (uc *insuranceUsecase) VerifySHA(ctx context.Context, request *requests.VerifySHA) (*responses.SHAVerification, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("insuranceUsecase.VerifySHA called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	patient, err := uc.activateCoverage(ctx, request.PatientID, constvars.InsuranceProviderSHA, request.SHANumber)
	if err != nil {
		return nil, err
	}

	return &responses.SHAVerification{
		IsValid:    true,
		MemberName: patient.Name,
		SHANumber:  request.SHANumber,
		Status:     constvars.InsuranceStatusActive,
		Tier:       constvars.SHAMockTier,
		CoverageDetails: responses.SHACoverageDetail{
			Outpatient: constvars.CoverageCovered,
			Inpatient:  constvars.CoverageCovered,
			Maternity:  constvars.CoverageCovered,
			Dental:     constvars.CoverageLimited,
		},
		Facilities: []string{constvars.SHAMockFacilities},
		ExpiryDate: uc.coverageExpiry(),
	}, nil
}

func (uc *insuranceUsecase) activateCoverage(ctx context.Context, patientID, provider, insuranceNumber string) (*models.Patient, error) {
	if _, err := uc.findPatient(ctx, patientID); err != nil {
		return nil, err
	}

	patient, err := uc.PatientRepository.UpdatePatient(ctx, patientID, bson.M{
		"$set": bson.M{
			constvars.MongoFieldInsuranceProvider: provider,
			constvars.MongoFieldInsuranceNumber:   insuranceNumber,
			constvars.MongoFieldInsuranceStatus:   constvars.InsuranceStatusActive,
			constvars.MongoFieldUpdatedAt:         uc.Now(),
		},
	})
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil, patientID)
	}
	return patient, nil
}

func (uc *insuranceUsecase) coverageExpiry() time.Time {
	return uc.Now().AddDate(0, 0, constvars.CoverageValidityDays)
}

func (uc *insuranceUsecase) findPatient(ctx context.Context, patientID string) (*models.Patient, error) {
	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil, patientID)
	}
	return patient, nil
}

// storeDocuments decodes every document before uploading any of them.
func (uc *insuranceUsecase) storeDocuments(ctx context.Context, claimNumber string, documents []string) ([]string, error) {
	if len(documents) == 0 {
		return nil, nil
	}

	maxBytes := uc.MinioConfig.ClaimDocumentMaxSizeInMB * 1024 * 1024
	decoded := make([][]byte, 0, len(documents))
	for i, document := range documents {
		data, err := base64.StdEncoding.DecodeString(document)
		if err != nil {
			return nil, exceptions.ErrDecodeBase64(err)
		}
		if maxBytes > 0 && len(data) > maxBytes {
			return nil, exceptions.ErrDocumentTooLarge(i, uc.MinioConfig.ClaimDocumentMaxSizeInMB)
		}
		decoded = append(decoded, data)
	}

	objectNames := make([]string, 0, len(decoded))
	for i, data := range decoded {
		objectName, err := uc.Storage.UploadObject(ctx, &requests.UploadFile{
			BucketName:  uc.MinioConfig.ClaimDocumentsBucket,
			ObjectName:  utils.GenerateClaimDocumentName(constvars.ClaimDocumentObjectPrefix, claimNumber, i),
			Data:        data,
			ContentType: constvars.ClaimDocumentContentType,
		})
		if err != nil {
			uc.Log.Error("insuranceUsecase.SubmitClaim error uploading claim document",
				zap.String(constvars.LoggingClaimNumberKey, claimNumber),
				zap.String(constvars.LoggingBucketKey, uc.MinioConfig.ClaimDocumentsBucket),
				zap.Error(err),
			)
			uc.removeDocuments(ctx, claimNumber, objectNames)
			return nil, err
		}
		uc.Log.Debug("insuranceUsecase.SubmitClaim stored claim document",
			zap.String(constvars.LoggingClaimNumberKey, claimNumber),
			zap.String(constvars.LoggingObjectKey, objectName),
		)
		objectNames = append(objectNames, objectName)
	}
	return objectNames, nil
}

// removeDocuments drops documents of a claim that was never recorded.
// Failures are logged and otherwise ignored.
func (uc *insuranceUsecase) removeDocuments(ctx context.Context, claimNumber string, objectNames []string) {
	for _, objectName := range objectNames {
		err := uc.Storage.RemoveObject(ctx, uc.MinioConfig.ClaimDocumentsBucket, objectName)
		if err != nil {
			uc.Log.Error("insuranceUsecase.SubmitClaim error removing orphaned claim document",
				zap.String(constvars.LoggingClaimNumberKey, claimNumber),
				zap.String(constvars.LoggingBucketKey, uc.MinioConfig.ClaimDocumentsBucket),
				zap.String(constvars.LoggingObjectKey, objectName),
				zap.Error(err),
			)
		}
	}
}
