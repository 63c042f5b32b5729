package encryption

import (
	"bytes"
	"crypto/aes"
	"fmt"
)

// pkcs7Padding returns the PKCS#7 padding that follows a stream of length bytes.
// A full block of padding is returned when length is already aligned.
func pkcs7Padding(length int64, blockSize int) []byte {
	padding := blockSize - int(length%int64(blockSize))

	return bytes.Repeat([]byte{byte(padding)}, padding)
}

// pkcs7Unpad removes PKCS#7 padding from the final block(s) of a plaintext.
// It returns an error if the padding is invalid.
func pkcs7Unpad(data []byte) ([]byte, error) {
	length := len(data)
	if length == 0 {
		return nil, fmt.Errorf("%w: no data", ErrInvalidPadding)
	}

	padding := int(data[length-1])
	if padding == 0 || padding > length || padding > aes.BlockSize {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidPadding, padding)
	}

	for i := length - padding; i < length; i++ {
		if data[i] != byte(padding) {
			return nil, ErrInvalidPadding
		}
	}

	return data[:length-padding], nil
}
