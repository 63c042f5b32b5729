package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/encutil/internal/config"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] inputs...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files or strings",
		Example: `  encutil encrypt -v -p <password> <filepath>
  encutil encrypt -s -p <password> "Encrypt ME!"`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Decrypt = false

			return preRun(cfg)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, cfg)
		},
	}
}
