package util

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Changing these invalidates stored hashes because the
// derived key is compared byte for byte.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16

	hashPrefix = "argon2id$"
)

// GenerateSalt returns a fresh random per-account salt, hex encoded.
func GenerateSalt() (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(salt), nil
}

// HashPassword derives an argon2id key from the plaintext password and salt.
// The result carries the "argon2id$" prefix so the scheme is identifiable.
func HashPassword(password, salt string) (string, error) {
	saltByte, err := hex.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("invalid salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), saltByte, argonTime, argonMemory, argonThreads, argonKeyLen)
	return hashPrefix + hex.EncodeToString(key), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// hash. The comparison is constant time.
func VerifyPassword(password, storedHash, salt string) (bool, error) {
	if !strings.HasPrefix(storedHash, hashPrefix) {
		return false, fmt.Errorf("unrecognized password hash format")
	}
	computed, err := HashPassword(password, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1, nil
}
