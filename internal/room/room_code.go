package room

import (
	"errors"
	"math/rand/v2"
)

const (
	codeLength = 4
	maxRetries = 100
)

// I and O are left out so codes read back unambiguously next to 1 and 0.
var letters = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ")

var ErrNoFreeCode = errors.New("no free room code")

// GenerateCode creates a random 4-letter uppercase room code that taken
// reports as free.
func GenerateCode(taken func(code string) bool) (string, error) {
	for range maxRetries {
		code := randomCode()
		if !taken(code) {
			return code, nil
		}
	}
	return "", ErrNoFreeCode
}

func randomCode() string {
	b := make([]rune, codeLength)
	for i := range b {
		b[i] = letters[rand.IntN(len(letters))]
	}
	return string(b)
}
