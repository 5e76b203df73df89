package utils

import (
	"testing"

	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct_CashPayment(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateStruct(&requests.CashPayment{Amount: 500, PatientID: "65f0c1d2e3f4a5b6c70f1a2b"})
		assert.NoError(t, err)
	})

	t.Run("reports every invalid field by json name", func(t *testing.T) {
		err := ValidateStruct(&requests.CashPayment{Amount: 0, PatientID: "not-an-id"})
		require.Error(t, err)

		issues := exceptions.FormatValidationErrors(err)
		require.Len(t, issues, 2)
		assert.Equal(t, "amount", issues[0].Field)
		assert.Equal(t, "patientId", issues[1].Field)
		assert.Equal(t, "patientId must be a valid identifier", issues[1].Message)
	})
}

func TestValidateStruct_CreatePatient(t *testing.T) {
	age := 0
	valid := requests.CreatePatient{
		Name:        "Jane Wanjiku",
		Age:         &age,
		Gender:      "female",
		PhoneNumber: "0712345678",
		Sickness:    "Malaria",
	}
	assert.NoError(t, ValidateStruct(&valid))

	missingAge := valid
	missingAge.Age = nil
	assert.Error(t, ValidateStruct(&missingAge))

	badGender := valid
	badGender.Gender = "unknown"
	err := ValidateStruct(&badGender)
	require.Error(t, err)
	assert.Equal(t, "gender must be one of [male, female, other]", exceptions.FormatFirstValidationError(err))

	badPhone := valid
	badPhone.PhoneNumber = "call me"
	assert.Error(t, ValidateStruct(&badPhone))
}

func TestValidateStruct_RegisterUser(t *testing.T) {
	doctor := requests.RegisterUser{
		Name:     "Dr. Otieno",
		Email:    "otieno@clinic.test",
		Password: "supersecret",
		Role:     "doctor",
	}
	assert.Error(t, ValidateStruct(&doctor))

	doctor.Specialization = "Pediatrics"
	assert.NoError(t, ValidateStruct(&doctor))

	doctor.Password = "short"
	assert.Error(t, ValidateStruct(&doctor))
}
