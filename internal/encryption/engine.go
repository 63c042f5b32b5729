package encryption

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"io"
)

// Transform encrypts or decrypts src into dst under password.
//
// Encryption writes a fresh salt followed by the ciphertext. Decryption reads the salt back
// before anything else. Chunks are processed strictly in order and ctx is only consulted
// between chunks. Failures are reported as ErrIO, ErrFraming or ErrCrypto. The sink is not
// rolled back on failure; use the File adapters for atomic output.
func Transform(ctx context.Context, dir Direction, src io.Reader, dst io.Writer, password []byte, opts ...Option) error {
	return transform(ctx, dir, src, dst, password, newOptions(opts...))
}

func transform(ctx context.Context, dir Direction, src io.Reader, dst io.Writer, password []byte, o Options) error {
	switch dir {
	case Encrypt:
		return encryptStream(ctx, src, dst, password, o)
	case Decrypt:
		return decryptStream(ctx, src, dst, password, o)
	default:
		return fmt.Errorf("unknown direction %d", dir)
	}
}

// newCFB derives the key material for password and salt and opens the CFB stream for dir.
func newCFB(dir Direction, password, salt []byte, iterations int) (cipher.Stream, error) {
	km := Derive(password, salt, iterations)

	block, err := aes.NewCipher(km.Key[:])
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	// Full-block (128-bit) feedback, as used by existing ciphertexts.
	if dir == Encrypt {
		return cipher.NewCFBEncrypter(block, km.IV[:]), nil //nolint:staticcheck
	}

	return cipher.NewCFBDecrypter(block, km.IV[:]), nil //nolint:staticcheck
}

// readChunk fills buf from r. It returns the number of bytes read and whether r is exhausted.
func readChunk(r io.Reader, buf []byte) (int, bool, error) {
	n, err := io.ReadFull(r, buf)

	switch {
	case err == nil:
		return n, false, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return n, true, nil
	default:
		return n, false, err
	}
}

func encryptStream(ctx context.Context, src io.Reader, dst io.Writer, password []byte, o Options) error {
	salt, err := NewSalt()
	if err != nil {
		return err
	}

	stream, err := newCFB(Encrypt, password, salt, o.Iterations)
	if err != nil {
		return err
	}

	if _, err := dst.Write(salt); err != nil {
		return fmt.Errorf("%w: writing salt: %w", ErrIO, err)
	}

	buf, release := getChunk(o.ChunkSize)
	defer release()

	var done int64

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("encryption stopped after %d bytes: %w", done, err)
		}

		n, eof, readErr := readChunk(src, buf)
		if n > 0 {
			chunk := buf[:n]
			stream.XORKeyStream(chunk, chunk)

			if _, err := dst.Write(chunk); err != nil {
				return fmt.Errorf("%w: writing ciphertext: %w", ErrIO, err)
			}

			done += int64(n)

			if o.Progress != nil {
				o.Progress(done)
			}
		}

		if readErr != nil {
			return fmt.Errorf("%w: reading plaintext: %w", ErrIO, readErr)
		}

		if eof {
			break
		}
	}

	padding := pkcs7Padding(done, aes.BlockSize)
	stream.XORKeyStream(padding, padding)

	if _, err := dst.Write(padding); err != nil {
		return fmt.Errorf("%w: writing final block: %w", ErrIO, err)
	}

	return nil
}

//nolint:gocognit,cyclop
func decryptStream(ctx context.Context, src io.Reader, dst io.Writer, password []byte, o Options) error {
	salt := make([]byte, SaltSize)
	if n, err := io.ReadFull(src, salt); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: got %d of %d bytes", ErrFraming, n, SaltSize)
		}

		return fmt.Errorf("%w: reading salt: %w", ErrIO, err)
	}

	stream, err := newCFB(Decrypt, password, salt, o.Iterations)
	if err != nil {
		return err
	}

	buf, release := getChunk(o.ChunkSize)
	defer release()

	// The last block of plaintext carries the padding and is held back until EOF.
	tail := make([]byte, 0, 2*aes.BlockSize)

	var done int64

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("decryption stopped after %d bytes: %w", done, err)
		}

		n, eof, readErr := readChunk(src, buf)
		if n > 0 {
			chunk := buf[:n]
			stream.XORKeyStream(chunk, chunk)

			tail, err = writeHeld(dst, tail, chunk)
			if err != nil {
				return fmt.Errorf("%w: writing plaintext: %w", ErrIO, err)
			}

			done += int64(n)

			// Bytes in tail are not written yet.
			if o.Progress != nil {
				o.Progress(done - int64(len(tail)))
			}
		}

		if readErr != nil {
			return fmt.Errorf("%w: reading ciphertext: %w", ErrIO, readErr)
		}

		if eof {
			break
		}
	}

	if done == 0 || done%aes.BlockSize != 0 {
		return fmt.Errorf("%w: %w: %d bytes", ErrCrypto, ErrInvalidBlockSize, done)
	}

	plain, err := pkcs7Unpad(tail)
	if err != nil {
		return fmt.Errorf("%w: removing padding: %w", ErrCrypto, err)
	}

	if _, err := dst.Write(plain); err != nil {
		return fmt.Errorf("%w: writing final block: %w", ErrIO, err)
	}

	if o.Progress != nil {
		o.Progress(done)
	}

	return nil
}

// writeHeld writes everything in tail+chunk except the last aes.BlockSize bytes,
// which are returned as the new tail.
func writeHeld(w io.Writer, tail, chunk []byte) ([]byte, error) {
	if len(chunk) >= aes.BlockSize {
		cut := len(chunk) - aes.BlockSize

		if len(tail) > 0 {
			if _, err := w.Write(tail); err != nil {
				return tail, err
			}
		}

		if cut > 0 {
			if _, err := w.Write(chunk[:cut]); err != nil {
				return tail, err
			}
		}

		return append(tail[:0], chunk[cut:]...), nil
	}

	tail = append(tail, chunk...)

	excess := len(tail) - aes.BlockSize
	if excess <= 0 {
		return tail, nil
	}

	if _, err := w.Write(tail[:excess]); err != nil {
		return tail, err
	}

	return append(tail[:0], tail[excess:]...), nil
}
