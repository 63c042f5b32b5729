// Command encutil encrypts and decrypts files or strings with a password.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/idelchi/encutil/internal/commands"
	"github.com/idelchi/encutil/internal/config"
)

// version is set at build time through -ldflags.
var version = "unknown - unofficial & generated by unknown"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg config.Config

	root := commands.NewRootCommand(&cfg, version)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		return 1
	}

	return 0
}
