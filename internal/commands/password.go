package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/idelchi/encutil/internal/config"
	"github.com/idelchi/encutil/internal/encryption"
)

// ErrPasswordMismatch is returned when the confirmation prompt does not match.
var ErrPasswordMismatch = errors.New("passwords do not match")

// readPassword resolves the password from the configuration, falling back to
// an interactive prompt when stdin is a terminal.
func readPassword(cfg *config.Config, stdin io.Reader, prompt io.Writer) ([]byte, error) {
	password, err := cfg.ResolvePassword()
	if !errors.Is(err, config.ErrNoPassword) {
		return password, err
	}

	file, ok := stdin.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return nil, err
	}

	password, err = promptPassword(file, prompt, "Password: ")
	if err != nil {
		return nil, err
	}

	if cfg.Direction() != encryption.Encrypt {
		return password, nil
	}

	confirm, err := promptPassword(file, prompt, "Confirm password: ")
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(password, confirm) {
		return nil, ErrPasswordMismatch
	}

	return password, nil
}

func promptPassword(file *os.File, prompt io.Writer, label string) ([]byte, error) {
	fmt.Fprint(prompt, label)

	password, err := term.ReadPassword(int(file.Fd()))

	fmt.Fprintln(prompt)

	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	return password, nil
}
