// Package commands provides the command-line interface for the encutil tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/idelchi/encutil/internal/config"
	"github.com/idelchi/encutil/internal/logic"
)

// preRun returns a PreRunE handler that stores positional args in cfg.Inputs
// and validates the configuration.
func preRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		cfg.Inputs = args

		return cfg.Validate()
	}
}

// run resolves the password and hands the configuration to the logic runner.
func run(cmd *cobra.Command, cfg *config.Config) error {
	if cfg.Show {
		return show(cmd.OutOrStdout(), cfg)
	}

	password, err := readPassword(cfg, cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	runner := &logic.Runner{
		Config:   cfg,
		Password: password,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
		Log:      newLogger(cfg, cmd.ErrOrStderr()),
	}

	return runner.Run(cmd.Context())
}

// show prints the configuration as YAML with the password redacted.
func show(w io.Writer, cfg *config.Config) error {
	out, err := yaml.Marshal(cfg.Redacted())
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	_, err = w.Write(out)

	return err
}
