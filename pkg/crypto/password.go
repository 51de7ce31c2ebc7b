package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12
	// OTPCost is the bcrypt cost used for short lived one-time codes
	OTPCost = bcrypt.DefaultCost
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
	randomInt                  = rand.Int
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a password with a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateOTP returns a 4 digit code in [1000, 9999] together with its bcrypt hash
func GenerateOTP() (code string, hash string, err error) {
	n, err := randomInt(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate otp: %w", err)
	}
	code = fmt.Sprintf("%04d", n.Int64()+1000)

	bytes, err := bcryptGenerateFromPassword([]byte(code), OTPCost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash otp: %w", err)
	}
	return code, string(bytes), nil
}

// GenerateRandomToken generates a random hex token of length*2 characters
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
