package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const defaultPasswordLength = 8

// RandomPasswordGenerator produces fixed-length alphanumeric passwords from
// crypto/rand. Each character is drawn independently, so outputs are not
// reused across calls except by negligible chance.
type RandomPasswordGenerator struct {
	length int
}

// NewRandomPasswordGenerator returns a generator for passwords of the given
// length. Non-positive lengths fall back to the default of 8.
func NewRandomPasswordGenerator(length int) *RandomPasswordGenerator {
	if length <= 0 {
		length = defaultPasswordLength
	}
	return &RandomPasswordGenerator{length: length}
}

func (g *RandomPasswordGenerator) Generate() (string, error) {
	buf := make([]byte, g.length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
