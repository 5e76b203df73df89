package models

import (
	"net/http"
	"testing"
	"time"

	"clinic-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    PaymentStatus
		to      PaymentStatus
		allowed bool
	}{
		{"pending to completed", PaymentPending, PaymentCompleted, true},
		{"pending to failed", PaymentPending, PaymentFailed, true},
		{"pending to refunded", PaymentPending, PaymentRefunded, false},
		{"completed to refunded", PaymentCompleted, PaymentRefunded, true},
		{"completed to failed", PaymentCompleted, PaymentFailed, false},
		{"completed to pending", PaymentCompleted, PaymentPending, false},
		{"failed to completed", PaymentFailed, PaymentCompleted, false},
		{"refunded to completed", PaymentRefunded, PaymentCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment := &Payment{Status: tt.from}
			err := payment.CanTransitionTo(tt.to)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, exceptions.StatusCodeOf(err))
		})
	}
}

func TestPayment_Transition(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("applies allowed transition", func(t *testing.T) {
		payment := &Payment{Status: PaymentPending}
		changed, err := payment.Transition(PaymentCompleted, now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, PaymentCompleted, payment.Status)
		assert.Equal(t, now, payment.UpdatedAt)
	})

	t.Run("same terminal status is a no-op", func(t *testing.T) {
		payment := &Payment{Status: PaymentCompleted}
		changed, err := payment.Transition(PaymentCompleted, now)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.True(t, payment.UpdatedAt.IsZero())
	})

	t.Run("rejects transition out of failed", func(t *testing.T) {
		payment := &Payment{Status: PaymentFailed}
		changed, err := payment.Transition(PaymentCompleted, now)
		assert.Error(t, err)
		assert.False(t, changed)
		assert.Equal(t, PaymentFailed, payment.Status)
	})
}

func TestPatient_HasActiveInsurance(t *testing.T) {
	assert.True(t, (&Patient{InsuranceProvider: "NSSF", InsuranceStatus: "active"}).HasActiveInsurance())
	assert.False(t, (&Patient{InsuranceProvider: "None", InsuranceStatus: "active"}).HasActiveInsurance())
	assert.False(t, (&Patient{InsuranceProvider: "SHA", InsuranceStatus: "pending"}).HasActiveInsurance())
	assert.False(t, (&Patient{}).HasActiveInsurance())
}
