package utils

import (
	"clinic-service/internal/pkg/constvars"
	"encoding/base64"
	"math"
	"strings"
	"time"
)

func BuildMpesaTimestamp(now time.Time) string {
	return now.Format(constvars.MpesaTimestampLayout)
}

// BuildMpesaPassword returns base64(shortCode + passkey + timestamp).
func BuildMpesaPassword(shortCode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
}

func BuildMpesaAccountReference(patientID string) string {
	suffix := patientID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return constvars.MpesaAccountReferencePrefix + suffix
}

func RoundMpesaAmount(amount float64) int64 {
	return int64(math.Round(amount))
}

// NormalizeMpesaPhoneNumber converts local 07XX/01XX numbers to the 254 prefix.
func NormalizeMpesaPhoneNumber(phone string) string {
	s := strings.TrimPrefix(NormalizePhoneDigits(phone), "+")
	if strings.HasPrefix(s, "0") {
		return "254" + s[1:]
	}
	return s
}
