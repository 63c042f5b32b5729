package encryption

import "errors"

var (
	// ErrIO is returned when the source or sink cannot be opened, read or written.
	ErrIO = errors.New("i/o failure")
	// ErrFraming is returned when the ciphertext is shorter than the leading salt.
	ErrFraming = errors.New("ciphertext shorter than salt")
	// ErrCrypto is returned when decryption cannot be finalized.
	// A wrong password and corrupted ciphertext are reported identically.
	ErrCrypto = errors.New("decryption failed")

	// ErrInvalidPadding is returned when PKCS7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrInvalidBlockSize is returned when the ciphertext length is not a positive multiple of the AES block size.
	ErrInvalidBlockSize = errors.New("ciphertext is not a multiple of block size")
)
