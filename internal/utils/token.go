package utils

import (
	"crypto/rand"
	"math/big"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// VerificationTokenLength is the fixed length of email verification tokens.
const VerificationTokenLength = 8

// NewVerificationToken generates a short uppercase alphanumeric token that a
// user can comfortably type from an email.
func NewVerificationToken() (string, error) {
	buf := make([]byte, VerificationTokenLength)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}
