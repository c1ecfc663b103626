package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2-HMAC-SHA256 parameters. Stored hashes embed their salt, so raising
// the iteration count only affects newly hashed passwords.
const (
	pbkdf2Iterations = 100_000
	saltLen          = 32 // bytes
	keyLen           = 32 // bytes
)

// encodedLen is the length of a stored hash: hex(salt ‖ derived key).
const encodedLen = (saltLen + keyLen) * 2

// HashPassword derives a key from the password with a fresh random salt and
// returns hex(salt ‖ key) for storage. Two calls with the same password
// produce different outputs.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLen, sha256.New)

	return hex.EncodeToString(append(salt, key...)), nil
}

// VerifyPassword re-derives the key with the salt embedded in the stored
// hash and compares in constant time. A malformed stored hash is an error,
// not a mismatch.
func VerifyPassword(password, stored string) (bool, error) {
	if len(stored) != encodedLen {
		return false, fmt.Errorf("stored hash has length %d, want %d", len(stored), encodedLen)
	}
	raw, err := hex.DecodeString(stored)
	if err != nil {
		return false, fmt.Errorf("decode stored hash: %w", err)
	}

	salt, key := raw[:saltLen], raw[saltLen:]
	candidate := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLen, sha256.New)

	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}
