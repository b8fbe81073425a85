package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// passwordAlphabet is ASCII letters, digits and the 32 punctuation
// characters, 94 symbols in total.
const passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	"0123456789" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

type passwordGenerator struct {
	alphabet string
	max      *big.Int
}

// NewPasswordGenerator returns a PasswordGenerator drawing every character
// independently and uniformly from the OS CSPRNG.
func NewPasswordGenerator() PasswordGenerator {
	return &passwordGenerator{
		alphabet: passwordAlphabet,
		max:      big.NewInt(int64(len(passwordAlphabet))),
	}
}

// Generate returns a password of exactly length characters. Returns
// ErrValidation when length is not positive.
func (g *passwordGenerator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: password length must be positive, got %d", ErrValidation, length)
	}

	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, g.max)
		if err != nil {
			return "", fmt.Errorf("error reading random source: %w", err)
		}
		out[i] = g.alphabet[n.Int64()]
	}

	return string(out), nil
}
