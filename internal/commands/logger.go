package commands

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/idelchi/encutil/internal/config"
)

// newLogger returns a text logger writing to w, leveled by --verbose and --quiet.
func newLogger(cfg *config.Config, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	switch {
	case cfg.Verbose:
		logger.SetLevel(logrus.DebugLevel)
	case cfg.Quiet:
		logger.SetLevel(logrus.WarnLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}
