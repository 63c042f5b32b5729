package encryption

import (
	"crypto/aes"
	"crypto/sha1" //nolint:gosec // PBKDF2-HMAC-SHA1 is part of the ciphertext format
	"fmt"

	"github.com/idelchi/gogen/pkg/key"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of the random salt leading every ciphertext.
	SaltSize = 32
	// KeySize is the AES-256 key length.
	KeySize = 32
	// IVSize is the CFB initialization vector length, one AES block.
	IVSize = aes.BlockSize
	// DefaultIterations is the PBKDF2 iteration count of the ciphertext format.
	DefaultIterations = 50000
)

// KeyMaterial is the key and IV derived from a password and salt.
type KeyMaterial struct {
	Key [KeySize]byte
	IV  [IVSize]byte
}

// Derive computes the key material for password and salt.
// It is a pure function: equal inputs always produce equal output. Empty passwords and salts
// are accepted. A non-positive iteration count selects DefaultIterations.
func Derive(password, salt []byte, iterations int) KeyMaterial {
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	// Key and IV are consecutive slices of a single PBKDF2 output stream.
	derived := pbkdf2.Key(password, salt, iterations, KeySize+IVSize, sha1.New)

	var km KeyMaterial

	copy(km.Key[:], derived[:KeySize])
	copy(km.IV[:], derived[KeySize:])

	return km
}

// NewSalt returns SaltSize bytes from the system's secure random source.
func NewSalt() ([]byte, error) {
	salt, err := key.New(SaltSize)
	if err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	return salt, nil
}
