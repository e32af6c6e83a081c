// Package sharecode produces the short, human-typable tokens used to
// exchange cards.
package sharecode

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Length is the number of characters in a share code.
	Length = 8

	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var alphabetSize = big.NewInt(int64(len(alphabet)))

// Generate returns a random code. Codes are not guaranteed unique; callers
// check against issued codes and call again on collision.
func Generate() (string, error) {
	b := make([]byte, Length)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("reading random source: %w", err)
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b), nil
}

// Normalize maps user input onto the canonical upper-case form.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid reports whether code (after normalization) has the generated shape.
func Valid(code string) bool {
	code = Normalize(code)
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(alphabet, code[i]) < 0 {
			return false
		}
	}
	return true
}
