package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tokenBytes is the amount of random material per token: 128 bytes, rendered
// as a 256-character hex string.
const tokenBytes = 128

// NewToken draws a fresh opaque bearer token from the system's
// cryptographically secure random source.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading random token material: %w", err)
	}
	return hex.EncodeToString(b), nil
}
