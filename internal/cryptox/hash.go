// Package cryptox provides the password digest and random credential
// generation used by the user service.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// HashPassword returns the base64-encoded SHA-256 digest of password
// concatenated with salt. The same inputs always produce the same
// digest; empty inputs are valid.
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// RandomString returns a hex string derived from n cryptographically
// random bytes. Used for salts and bearer tokens.
func RandomString(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
