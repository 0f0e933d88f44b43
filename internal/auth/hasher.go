// Package auth derives and verifies salted password hashes.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultIterations = 65536
	KeyLength         = 16
	SaltLength        = 16
)

type Hasher struct {
	iterations int
}

type HasherOption func(*Hasher)

// WithIterations overrides the PBKDF2 work factor. Hashes are only comparable
// between hashers built with the same value.
func WithIterations(n int) HasherOption {
	return func(h *Hasher) {
		if n > 0 {
			h.iterations = n
		}
	}
}

func NewHasher(opts ...HasherOption) *Hasher {
	h := &Hasher{iterations: DefaultIterations}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hasher) Hash(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, h.iterations, KeyLength, sha256.New)
}

func (h *Hasher) NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// Verify recomputes the hash with the stored salt and compares it in constant time.
func (h *Hasher) Verify(password string, salt, stored []byte) bool {
	return subtle.ConstantTimeCompare(h.Hash(password, salt), stored) == 1
}
