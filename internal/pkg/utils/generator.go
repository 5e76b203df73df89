package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func GenerateSessionJWT(sessionID, secret string, jwtExpiryTime int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": sessionID,
		"exp":        time.Now().Add(time.Duration(jwtExpiryTime) * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GenerateRequestID() string {
	return uuid.New().String()
}

func GenerateSessionID() string {
	return uuid.New().String()
}

// GenerateCashTransactionID returns CASH-<unix millis>-<9 base36 chars>.
func GenerateCashTransactionID(prefix string, now time.Time) (string, error) {
	suffix, err := randomBase36(9)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), suffix), nil
}

// GenerateClaimNumber returns CLM-<unix millis>-<6 uppercase base36 chars>.
func GenerateClaimNumber(prefix string, now time.Time) (string, error) {
	suffix, err := randomBase36(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), strings.ToUpper(suffix)), nil
}

func GenerateClaimDocumentName(prefix, claimNumber string, index int) string {
	return fmt.Sprintf("%s/%s/document-%d", prefix, claimNumber, index+1)
}

func randomBase36(length int) (string, error) {
	max := big.NewInt(int64(len(base36Alphabet)))
	out := make([]byte, length)
	for i := range out {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = base36Alphabet[num.Int64()]
	}
	return string(out), nil
}
