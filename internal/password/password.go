// Package password derives and verifies salted password hashes.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor. 12 rounds keeps brute force expensive
// while staying inside interactive latency.
const Cost = 12

// Hash returns a self-contained bcrypt hash of plaintext. The salt is
// generated per call and encoded into the result together with the
// algorithm parameters.
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. It never
// fails on malformed input, it only returns false.
func Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
