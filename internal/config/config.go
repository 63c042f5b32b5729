// Package config holds the command-line configuration of encutil.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"

	"github.com/idelchi/encutil/internal/encryption"
)

// ErrNoPassword is returned when neither a password nor a password file was provided.
var ErrNoPassword = errors.New("no password provided")

// Suffixes defines the file suffixes used for encryption and decryption.
type Suffixes struct {
	// Encrypt is appended to encrypted files.
	Encrypt string `mapstructure:"encrypt-ext" validate:"required" label:"--encrypt-ext"`
	// Decrypt is appended to decrypted files, after stripping the encrypted suffix.
	Decrypt string `mapstructure:"decrypt-ext" label:"--decrypt-ext"`
}

// Config holds the application's configuration parameters.
type Config struct {
	// Show the configuration and exit
	Show bool

	// Password used to derive the key
	Password string `validate:"exclusive=PasswordFile" label:"--password"`

	// Path to a file containing the password
	PasswordFile string `mapstructure:"password-file" label:"--password-file"`

	// Treat inputs as raw strings instead of file paths
	String bool

	// Report progress and debug information
	Verbose bool `validate:"exclusive_bool=Quiet" label:"--verbose"`

	// Suppress non-error output
	Quiet bool

	// Number of files processed concurrently
	Parallel int `validate:"min=1" label:"--parallel"`

	// Bytes read per chunk; 0 selects the default for the input type
	ChunkSize int `mapstructure:"chunk-size" validate:"omitempty,min=16" label:"--chunk-size"`

	// Suffixes for output files
	Suffixes Suffixes `mapstructure:",squash"`

	// Delete the original file after successful processing
	Delete bool

	// Show what would be processed without writing anything
	Dry bool

	// Print a summary after processing
	Stats bool

	// Copy the modification time of the input onto the output
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// Set by the decrypt command
	Decrypt bool `mapstructure:"-"`

	// Positional arguments: file paths, or raw strings with --string
	Inputs []string `mapstructure:"-" validate:"min=1" label:"inputs"`
}

// Direction returns the operation selected by the command.
func (c *Config) Direction() encryption.Direction {
	if c.Decrypt {
		return encryption.Decrypt
	}

	return encryption.Encrypt
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	validate := validator.NewValidator()

	if err := registerExclusive(validate); err != nil {
		return err
	}

	if errs := validate.Validate(c); len(errs) > 0 {
		return fmt.Errorf("validating configuration: %w", errors.Join(errs...))
	}

	if c.String && (c.Delete || c.PreserveTimestamps) {
		return errors.New("validating configuration: --delete and --preserve-timestamps only apply to files")
	}

	return nil
}

// ResolvePassword returns the password bytes from --password or --password-file.
// A trailing line break in the file is not part of the password.
func (c *Config) ResolvePassword() ([]byte, error) {
	switch {
	case c.Password != "":
		return []byte(c.Password), nil
	case c.PasswordFile != "":
		data, err := os.ReadFile(c.PasswordFile)
		if err != nil {
			return nil, fmt.Errorf("reading password file: %w", err)
		}

		return []byte(strings.TrimRight(string(data), "\r\n")), nil
	default:
		return nil, ErrNoPassword
	}
}

// ChunkSizeFor returns the configured chunk size, or the default for the input type.
func (c *Config) ChunkSizeFor() int {
	switch {
	case c.ChunkSize > 0:
		return c.ChunkSize
	case c.String:
		return encryption.StringChunkSize
	default:
		return encryption.DefaultChunkSize
	}
}

// Redacted returns a copy of the configuration that is safe to print.
func (c Config) Redacted() Config {
	if c.Password != "" {
		c.Password = "<redacted>"
	}

	return c
}
