package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input past 72 bytes; truncate explicitly so hashing and
// verification agree on long passwords.
const maxPasswordBytes = 72

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		return b[:maxPasswordBytes]
	}
	return b
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(password)) == nil
}

// normalizeAnswer makes security-answer comparison case- and
// whitespace-insensitive.
func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// HashSecurityAnswer hashes a security answer for storage.
func HashSecurityAnswer(answer string) (string, error) {
	return HashPassword(normalizeAnswer(answer))
}

// VerifySecurityAnswer reports whether answer matches the stored hash.
func VerifySecurityAnswer(answer, hash string) bool {
	return VerifyPassword(normalizeAnswer(answer), hash)
}
