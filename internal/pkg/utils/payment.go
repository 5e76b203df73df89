package utils

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"time"
)

func BuildPaymentEvent(eventType string, payment *models.Payment, now time.Time) *requests.PaymentEvent {
	return &requests.PaymentEvent{
		EventType:     eventType,
		PaymentID:     payment.ID.Hex(),
		PatientID:     payment.Patient.Hex(),
		TransactionID: payment.TransactionID,
		Amount:        payment.Amount,
		PaymentMethod: payment.PaymentMethod,
		Status:        string(payment.Status),
		ReceiptNumber: payment.MpesaReceiptNumber,
		OccurredAt:    now.UTC().Format(time.RFC3339),
	}
}
