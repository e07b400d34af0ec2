package security

import (
	"crypto/rand"
	"math/big"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars = "0123456789"

	resetPasswordLength = 8
)

// GenerateResetPassword returns an 8 character password with one upper-case
// letter, one digit and lower-case letters for the rest, in random order.
func GenerateResetPassword() (string, error) {
	upper, err := gonanoid.Generate(upperChars, 1)
	if err != nil {
		return "", err
	}

	digit, err := gonanoid.Generate(digitChars, 1)
	if err != nil {
		return "", err
	}

	lower, err := gonanoid.Generate(lowerChars, resetPasswordLength-2)
	if err != nil {
		return "", err
	}

	b := []byte(upper + digit + lower)

	// Fisher-Yates
	for i := len(b) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}

		b[i], b[j.Int64()] = b[j.Int64()], b[i]
	}

	return string(b), nil
}
