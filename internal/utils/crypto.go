package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSecret returns a URL-safe encoding of n cryptographically
// random bytes. Used for api key secrets.
func GenerateSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
