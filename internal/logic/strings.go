package logic

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/idelchi/encutil/internal/encryption"
	"github.com/idelchi/encutil/internal/progress"
)

// runStrings encrypts each input string to base64, or decrypts each base64 input to text.
// Inputs are processed in order and the first failure stops the run.
func (r *Runner) runStrings(ctx context.Context) error {
	for i, input := range r.Config.Inputs {
		output, err := r.processString(ctx, input)
		if err != nil {
			return fmt.Errorf("processing input #%d: %w", i+1, err)
		}

		fmt.Fprintln(r.Stdout, output)
	}

	return nil
}

func (r *Runner) processString(ctx context.Context, input string) (string, error) {
	label := fmt.Sprintf("string(%d)", len(input))

	if !r.Config.Decrypt {
		data := []byte(input)

		encrypted, err := encryption.EncryptBytes(ctx, data, r.Password,
			r.options(label, progress.TotalFor(int64(len(data)), encryption.Encrypt))...)
		if err != nil {
			return "", err
		}

		return base64.StdEncoding.EncodeToString(encrypted), nil
	}

	data, err := DecodeBase64(input)
	if err != nil {
		return "", err
	}

	decrypted, err := encryption.DecryptBytes(ctx, data, r.Password,
		r.options(label, progress.TotalFor(int64(len(data)), encryption.Decrypt))...)
	if err != nil {
		return "", err
	}

	return string(decrypted), nil
}

// DecodeBase64 decodes standard base64, either correctly padded or without padding.
func DecodeBase64(input string) ([]byte, error) {
	trimmed := strings.TrimSpace(input)

	if data, err := base64.StdEncoding.DecodeString(trimmed); err == nil {
		return data, nil
	}

	data, err := base64.RawStdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 input: %w", err)
	}

	return data, nil
}
