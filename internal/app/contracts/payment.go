package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type PaymentUsecase interface {
	InitiatePayment(ctx context.Context, request *requests.InitiatePayment) (*responses.PaymentInitiated, error)
	InitiateSTKPush(ctx context.Context, request *requests.STKPushPayment) (*responses.STKPushInitiated, error)
	RecordCashPayment(ctx context.Context, request *requests.CashPayment) (*models.Payment, error)
	HandleMpesaCallback(ctx context.Context, callback *requests.MpesaCallback) error
	ListPayments(ctx context.Context, filter *requests.PaymentFilter) ([]models.Payment, error)
	GetPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error)
}

// PaymentRepository lookups return (nil, nil) when no document matches.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) (paymentID string, err error)
	FindAll(ctx context.Context, filter *requests.PaymentFilter) ([]models.Payment, error)
	FindByID(ctx context.Context, paymentID string) (*models.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	FindByClaimNumber(ctx context.Context, claimNumber string) (*models.Payment, error)
	FindCreatedSince(ctx context.Context, since time.Time) ([]models.Payment, error)
	// TransitionStatus applies set only while the mpesa payment is still in status from.
	TransitionStatus(ctx context.Context, transactionID string, from models.PaymentStatus, set bson.M) (updated bool, err error)
}

// PaymentLedger records a payment together with the owning patient's reference.
type PaymentLedger interface {
	Record(ctx context.Context, payment *models.Payment) error
	Reconcile(ctx context.Context, since time.Time) (repaired int, err error)
}
