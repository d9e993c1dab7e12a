package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// GenerateVerificationCode returns a 6-digit code for email verification.
func GenerateVerificationCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the process is in real trouble anyway
		panic(err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10)
}
