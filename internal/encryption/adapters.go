package encryption

import (
	"bytes"
	"context"
	"crypto/aes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/idelchi/encutil/internal/fileutil"
)

// EncryptStream encrypts src into dst.
func EncryptStream(ctx context.Context, src io.Reader, dst io.Writer, password []byte, opts ...Option) error {
	return Transform(ctx, Encrypt, src, dst, password, opts...)
}

// DecryptStream decrypts src into dst.
func DecryptStream(ctx context.Context, src io.Reader, dst io.Writer, password []byte, opts ...Option) error {
	return Transform(ctx, Decrypt, src, dst, password, opts...)
}

// EncryptBytes encrypts data and returns the salted ciphertext.
func EncryptBytes(ctx context.Context, data, password []byte, opts ...Option) ([]byte, error) {
	return transformBytes(ctx, Encrypt, data, password, opts...)
}

// DecryptBytes decrypts a salted ciphertext and returns the plaintext.
// The result is non-nil on success, even for an empty plaintext.
func DecryptBytes(ctx context.Context, data, password []byte, opts ...Option) ([]byte, error) {
	return transformBytes(ctx, Decrypt, data, password, opts...)
}

func transformBytes(ctx context.Context, dir Direction, data, password []byte, opts ...Option) ([]byte, error) {
	o := newOptions(opts...).fit(int64(len(data)))

	out := bytes.NewBuffer(make([]byte, 0, OutputSize(dir, int64(len(data)))))

	if err := transform(ctx, dir, bytes.NewReader(data), out, password, o); err != nil {
		return nil, fmt.Errorf("%sing %d bytes: %w", dir, len(data), err)
	}

	return out.Bytes(), nil
}

// EncryptFile encrypts the file at inPath into outPath.
func EncryptFile(ctx context.Context, inPath, outPath string, password []byte, opts ...Option) error {
	return transformFile(ctx, Encrypt, inPath, outPath, password, opts...)
}

// DecryptFile decrypts the file at inPath into outPath.
func DecryptFile(ctx context.Context, inPath, outPath string, password []byte, opts ...Option) error {
	return transformFile(ctx, Decrypt, inPath, outPath, password, opts...)
}

// transformFile streams inPath through Transform into a temporary file that replaces outPath
// only on success. On failure outPath is left untouched. The output is owner read/write, with
// execute bits added when inPath is executable, so an executable survives a round trip.
func transformFile(
	ctx context.Context,
	dir Direction,
	inPath, outPath string,
	password []byte,
	opts ...Option,
) error {
	inFile, err := os.Open(filepath.Clean(inPath))
	if err != nil {
		return fmt.Errorf("%w: opening input file: %w", ErrIO, err)
	}
	defer inFile.Close()

	info, err := inFile.Stat()
	if err != nil {
		return fmt.Errorf("%w: getting file info for %q: %w", ErrIO, inPath, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %q is not a regular file", ErrIO, inPath)
	}

	tmp, err := fileutil.NewTempFile(outPath)
	if err != nil {
		return fmt.Errorf("%w: preparing atomic write: %w", ErrIO, err)
	}
	defer tmp.Cleanup()

	o := newOptions(opts...).fit(info.Size())

	if err := transform(ctx, dir, inFile, tmp, password, o); err != nil {
		return fmt.Errorf("%sing file %q: %w", dir, inPath, err)
	}

	if err := tmp.Commit(fileutil.OutputMode(info)); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	return nil
}

// OutputSize returns the output length for an input of size bytes.
// It is exact when encrypting and an upper bound when decrypting.
func OutputSize(dir Direction, size int64) int64 {
	if dir == Encrypt {
		return SaltSize + size + aes.BlockSize - size%aes.BlockSize
	}

	return max(size-SaltSize, 0)
}
