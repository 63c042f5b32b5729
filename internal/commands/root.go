package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/encutil/internal/config"
	"github.com/idelchi/encutil/internal/encryption"
)

// EnvPrefix is the prefix of environment variables overriding flags, e.g. ENCUTIL_PASSWORD.
const EnvPrefix = "ENCUTIL"

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	vip := viper.New()
	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()

	root := &cobra.Command{
		Use:   "encutil [flags] command [flags]",
		Short: "Password-based file and string encryption",
		Long: `Encrypts and decrypts files or raw strings with a password.

Output is AES-256-CFB with a random salt and a key derived through PBKDF2.
Files are streamed in chunks, so inputs of any size run in bounded memory.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: cobraext.UnknownSubcommandAction,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := vip.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("binding flags: %w", err)
			}

			if err := vip.Unmarshal(cfg); err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}

			return nil
		},
	}

	flags := root.PersistentFlags()

	flags.Bool("show", false, "Show the configuration and exit")
	flags.StringP("password", "p", "", "Password to derive the key from (prompted for when omitted on a terminal)")
	flags.String("password-file", "", "Path to a file containing the password")
	flags.BoolP("string", "s", false, "Treat inputs as raw strings; ciphertexts are base64 encoded")
	flags.BoolP("verbose", "v", false, "Report progress and details")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of files processed in parallel, defaults to number of CPUs")
	flags.Int("chunk-size", 0, fmt.Sprintf("Bytes processed per chunk (default %d for files, %d for strings)",
		encryption.DefaultChunkSize, encryption.StringChunkSize))
	flags.String("encrypt-ext", ".encrypted", "Suffix to append to encrypted files")
	flags.String("decrypt-ext", ".decrypted", "Suffix to append to decrypted files, after stripping the encrypted suffix")
	flags.BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")
	flags.Bool("dry", false, "Show which files would be processed without writing anything")
	flags.Bool("stats", false, "Print a summary after processing")
	flags.Bool("preserve-timestamps", false, "Copy the modification time of each input onto its output")

	root.AddCommand(NewEncryptCommand(cfg), NewDecryptCommand(cfg))

	return root
}
