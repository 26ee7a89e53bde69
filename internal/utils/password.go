package utils

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 16
	hashIter   = 10000
	hashKeyLen = 64
)

// GenSalt returns a random hex salt for password hashing.
func GenSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword derives a pbkdf2-sha512 hash of password with the given salt.
func HashPassword(password, salt string) (string, error) {
	if password == "" || salt == "" {
		return "", errors.New("password and salt must not be empty")
	}
	key := pbkdf2.Key([]byte(password), []byte(salt), hashIter, hashKeyLen, sha512.New)
	return hex.EncodeToString(key), nil
}

// ComparePassword reports whether password hashes to hashed under salt.
func ComparePassword(password, hashed, salt string) (bool, error) {
	if hashed == "" {
		return false, errors.New("hashed password must not be empty")
	}
	computed, err := HashPassword(password, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hashed)) == 1, nil
}
