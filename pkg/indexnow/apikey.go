package indexnow

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/Sriram-PR/index-now/pkg/utils"
)

const (
	MinAPIKeyLength     = 8
	MaxAPIKeyLength     = 128
	DefaultAPIKeyLength = 32
)

const apiKeyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateAPIKey returns a random IndexNow key of the given length
// Keys up to 32 characters are taken from a UUIDv4 in hex; longer keys use lowercase letters and digits
func GenerateAPIKey(length int) (string, error) {
	if length < MinAPIKeyLength || length > MaxAPIKeyLength {
		return "", fmt.Errorf("%w: got %d", utils.ErrInvalidAPIKeyLength, length)
	}

	if length <= 32 {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", fmt.Errorf("generating UUID for API key: %w", err)
		}
		return strings.ReplaceAll(id.String(), "-", "")[:length], nil
	}

	var sb strings.Builder
	sb.Grow(length)
	limit := big.NewInt(int64(len(apiKeyAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("reading random bytes for API key: %w", err)
		}
		sb.WriteByte(apiKeyAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// KeyFileURL returns the conventional key file location at the root of host
func KeyFileURL(host, key string) string {
	return "https://" + host + "/" + key + ".txt"
}
