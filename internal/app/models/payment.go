package models

import (
	"clinic-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID                 primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Patient            primitive.ObjectID `json:"patient" bson:"patient"`
	Amount             float64            `json:"amount" bson:"amount"`
	PaymentMethod      string             `json:"paymentMethod" bson:"paymentMethod"`
	TransactionID      string             `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	MpesaReceiptNumber string             `json:"mpesaReceiptNumber,omitempty" bson:"mpesaReceiptNumber,omitempty"`
	PhoneNumber        string             `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	Status             PaymentStatus      `json:"status" bson:"status"`
	Description        string             `json:"description,omitempty" bson:"description,omitempty"`
	InsuranceClaim     *InsuranceClaim    `json:"insuranceClaim,omitempty" bson:"insuranceClaim,omitempty"`
	// PatientDetails is only populated on reads.
	PatientDetails *PatientSummary `json:"patientDetails,omitempty" bson:"patientDetails,omitempty"`
	TimeModel      `bson:",inline"`
}

type PatientSummary struct {
	Name              string `json:"name" bson:"name"`
	PhoneNumber       string `json:"phoneNumber" bson:"phoneNumber"`
	InsuranceProvider string `json:"insuranceProvider,omitempty" bson:"insuranceProvider,omitempty"`
}

type InsuranceClaim struct {
	Provider       string   `json:"provider" bson:"provider"`
	ClaimNumber    string   `json:"claimNumber" bson:"claimNumber"`
	ApprovedAmount float64  `json:"approvedAmount" bson:"approvedAmount"`
	Status         string   `json:"status" bson:"status"`
	Documents      []string `json:"documents,omitempty" bson:"documents,omitempty"`
}

// CanTransitionTo reports whether the payment may move to target.
//
//   - pending -> completed, failed
//   - completed -> refunded
//
// failed and refunded are terminal.
func (p *Payment) CanTransitionTo(target PaymentStatus) error {
	switch p.Status {
	case PaymentPending:
		if target == PaymentCompleted || target == PaymentFailed {
			return nil
		}
	case PaymentCompleted:
		if target == PaymentRefunded {
			return nil
		}
	}
	return exceptions.ErrInvalidPaymentTransition(nil, string(p.Status), string(target))
}

// Transition moves the payment to target. Re-applying the current status is a
// no-op and reports changed=false.
func (p *Payment) Transition(target PaymentStatus, now time.Time) (changed bool, err error) {
	if p.Status == target {
		return false, nil
	}
	if err := p.CanTransitionTo(target); err != nil {
		return false, err
	}
	p.Status = target
	p.UpdatedAt = now
	return true, nil
}
