package utils

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildMpesaTimestamp(t *testing.T) {
	now := time.Date(2024, 3, 9, 7, 5, 1, 0, time.UTC)
	assert.Equal(t, "20240309070501", BuildMpesaTimestamp(now))
}

func TestBuildMpesaPassword(t *testing.T) {
	password := BuildMpesaPassword("174379", "passkey", "20240309070501")

	decoded, err := base64.StdEncoding.DecodeString(password)
	assert.NoError(t, err)
	assert.Equal(t, "174379passkey20240309070501", string(decoded))
}

func TestBuildMpesaAccountReference(t *testing.T) {
	assert.Equal(t, "PAT0f1a2b", BuildMpesaAccountReference("65f0c1d2e3f4a5b6c70f1a2b"))
	assert.Equal(t, "PAT123", BuildMpesaAccountReference("123"))
}

func TestRoundMpesaAmount(t *testing.T) {
	assert.Equal(t, int64(500), RoundMpesaAmount(499.5))
	assert.Equal(t, int64(499), RoundMpesaAmount(499.49))
}

func TestNormalizeMpesaPhoneNumber(t *testing.T) {
	tests := map[string]string{
		"0712345678":      "254712345678",
		"+254712345678":   "254712345678",
		"254 712 345 678": "254712345678",
		"0112-345-678":    "254112345678",
		"254712345678":    "254712345678",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, NormalizeMpesaPhoneNumber(input), input)
	}
}
