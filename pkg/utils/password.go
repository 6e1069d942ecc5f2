package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidHashFormat = errors.New("invalid encoded hash format")
	ErrPasswordMismatch  = errors.New("password does not match")
)

// Encoded form is "salt.hash", both segments standard base64.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is blank")
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", ErrorHandler(err, "failed to generate salt")
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)

	saltBase64 := base64.StdEncoding.EncodeToString(salt)
	hashBase64 := base64.StdEncoding.EncodeToString(hash)

	return fmt.Sprintf("%s.%s", saltBase64, hashBase64), nil
}

// VerifyPassword checks a plaintext password against a stored "salt.hash" value.
func VerifyPassword(password, encodedHash string) error {
	parts := strings.Split(encodedHash, ".")
	if len(parts) != 2 {
		return ErrInvalidHashFormat
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return ErrInvalidHashFormat
	}

	storedHash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return ErrInvalidHashFormat
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	if len(hash) != len(storedHash) {
		return ErrPasswordMismatch
	}

	if subtle.ConstantTimeCompare(hash, storedHash) != 1 {
		return ErrPasswordMismatch
	}

	return nil
}
