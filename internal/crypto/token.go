package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// DefaultTokenLength is the number of characters in a verification token.
const DefaultTokenLength = 20

// TokenGenerator produces opaque single-use verification tokens.
type TokenGenerator interface {
	NewToken() (string, error)
}

// RandomTokenGenerator emits fixed-length lowercase hex tokens read from
// crypto/rand.
type RandomTokenGenerator struct {
	Length int
}

func (g *RandomTokenGenerator) NewToken() (string, error) {
	length := g.Length
	if length <= 0 {
		length = DefaultTokenLength
	}

	b := make([]byte, (length+1)/2)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b)[:length], nil
}
