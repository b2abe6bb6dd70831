// Package cryptox derives the stored password hash and salt of a forum user.
//
// The salt is 32 random bytes and the hash a 64-byte Argon2id key, so their
// hex encodings are exactly 64 and 128 characters long.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 32
	HashSize = 64

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

var ErrEmptyPassword = errors.New("password is empty")

// MakeRandHexString returns size random bytes encoded as hex (2*size chars).
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewSalt returns a fresh salt in hex form.
func NewSalt() (string, error) {
	return MakeRandHexString(SaltSize)
}

// DeriveHash stretches password with the hex-encoded salt and returns the
// key in hex form.
func DeriveHash(password []byte, saltHex string) (string, error) {
	if len(password) == 0 {
		return "", ErrEmptyPassword
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return "", fmt.Errorf("decode salt: %w", err)
	}
	key := argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, HashSize)
	defer WipeByteArray(key)
	return hex.EncodeToString(key), nil
}

// HashPassword generates a salt and derives the matching hash.
func HashPassword(password []byte) (hash, salt string, err error) {
	salt, err = NewSalt()
	if err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	hash, err = DeriveHash(password, salt)
	if err != nil {
		return "", "", err
	}
	return hash, salt, nil
}

// CheckPassword reports whether password matches the stored hash and salt.
func CheckPassword(password []byte, hashHex, saltHex string) bool {
	candidate, err := DeriveHash(password, saltHex)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(hashHex)) == 1
}

// WipeByteArray zeroes b. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
