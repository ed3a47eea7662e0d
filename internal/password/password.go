// Package password hashes and verifies account passwords.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes is the longest password bcrypt accepts, counted in bytes rather than characters.
const MaxBytes = 72

// ErrTooLong is returned by HashPassword for passwords longer than MaxBytes.
var ErrTooLong = bcrypt.ErrPasswordTooLong

// Cost is the bcrypt work factor. Tests lower it to keep runs fast.
var Cost = bcrypt.DefaultCost

// FitsBcrypt reports whether plaintext is short enough to be hashed.
func FitsBcrypt(plaintext string) bool {
	return len(plaintext) <= MaxBytes
}

// HashPassword returns the bcrypt hash of plaintext.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches hash.
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
