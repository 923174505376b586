package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	SecretKeyAlphabet      = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	MinSecretKeyLength     = 32
	DefaultSecretKeyLength = 48
)

var errEmptyAlphabet = errors.New("alphabet must not be empty")

// GenerateSecretKey returns a random SECRET_KEY value. Lengths below the
// accepted minimum are raised to it.
func GenerateSecretKey(length int) (string, error) {
	if length < MinSecretKeyLength {
		length = MinSecretKeyLength
	}
	return randomString(length, SecretKeyAlphabet)
}

// randomString draws every character uniformly from alphabet using crypto/rand.
func randomString(length int, alphabet string) (string, error) {
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}
	if length <= 0 {
		return "", nil
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}
	return string(value), nil
}
