package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

// APIKeyPrefix starts every generated machine client key.
const APIKeyPrefix = "rk_"

const apiKeyEntropyBytes = 32

// GenerateAPIKey returns a fresh key for a machine client listed in API_KEYS.
func GenerateAPIKey() (string, error) {
	b := make([]byte, apiKeyEntropyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return APIKeyPrefix + base64.RawURLEncoding.EncodeToString(b), nil
}

// MaskAPIKey keeps the first characters of a key, enough to tell keys apart in logs.
func MaskAPIKey(key string) string {
	visible := len(APIKeyPrefix) + 4
	if !strings.HasPrefix(key, APIKeyPrefix) {
		visible = 4
	}
	if len(key) <= visible {
		return strings.Repeat("*", len(key))
	}
	return key[:visible] + "..."
}
