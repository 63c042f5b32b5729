// Package logic implements the batch processing behind the encrypt and decrypt commands.
package logic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/encutil/internal/config"
	"github.com/idelchi/encutil/internal/encryption"
	"github.com/idelchi/encutil/internal/fileutil"
	"github.com/idelchi/encutil/internal/progress"
)

// Runner processes the inputs of one command invocation.
type Runner struct {
	// Config is the validated configuration.
	Config *config.Config

	// Password is the resolved password.
	Password []byte

	// Stdout receives the primary output: processed paths, ciphertexts or plaintexts.
	Stdout io.Writer

	// Stderr receives the statistics summary.
	Stderr io.Writer

	// Log receives diagnostics and progress.
	Log logrus.FieldLogger
}

// Run encrypts or decrypts all configured inputs.
func (r *Runner) Run(ctx context.Context) error {
	if r.Config.String {
		return r.runStrings(ctx)
	}

	return r.runFiles(ctx)
}

// options returns the engine options for an input of total bytes.
func (r *Runner) options(input string, total int64) []encryption.Option {
	opts := []encryption.Option{encryption.WithChunkSize(r.Config.ChunkSizeFor())}

	if r.Config.Verbose {
		log := r.Log.WithField("input", input)

		reporter := progress.NewReporter(total, func(_, _ int64, message string) {
			log.Info(message)
		})

		opts = append(opts, encryption.WithProgress(reporter.Func()))
	}

	return opts
}

//nolint:cyclop,gocognit,funlen // parallel processing pipeline with printer goroutine
func (r *Runner) runFiles(ctx context.Context) error {
	start := time.Now()

	files, err := resolveFiles(r.Config.Inputs)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	if r.Config.Dry {
		return r.dryRun(files, start)
	}

	results := make(chan Result, len(files))

	group := errgroup.Group{}
	group.SetLimit(r.Config.Parallel)

	printed := make(chan struct{})

	var (
		processed int
		totalSize int64
		failures  []error
	)

	go func() {
		defer close(printed)

		for result := range results {
			log := r.Log.WithField("input", result.Input)

			if result.Error != nil {
				failures = append(failures, result.Error)

				log.WithError(result.Error).Error("processing failed")

				continue
			}

			processed++

			totalSize += result.OutputSize

			if !r.Config.Quiet {
				fmt.Fprintf(r.Stdout, "Processed %q -> %q\n", result.Input, result.Output)
			}

			log.WithFields(logrus.Fields{
				"output": result.Output,
				"size":   result.OutputSize,
			}).Debug("processed")

			if r.Config.Delete {
				if err := os.Remove(result.Input); err != nil {
					log.WithError(err).Error("deleting input failed")
				} else if !r.Config.Quiet {
					fmt.Fprintf(r.Stdout, "Deleted %q\n", result.Input)
				}
			}
		}
	}()

	for _, file := range files {
		group.Go(func() error {
			outPath := outputPath(file, r.Config)

			size, err := r.processFile(ctx, file, outPath)
			if err != nil {
				results <- Result{Input: file, Error: err}

				return nil
			}

			results <- Result{Input: file, Output: outPath, OutputSize: size}

			return nil
		})
	}

	// Workers report failures through results only.
	_ = group.Wait()

	close(results)

	<-printed

	if r.Config.Stats {
		printStats(r.Stderr, len(files), processed, len(failures), totalSize, time.Since(start))
	}

	if len(failures) > 0 {
		return &FailedError{Failed: len(failures), Total: len(files), Errs: failures}
	}

	return nil
}

// processFile runs one file through the engine and returns the size of the output.
func (r *Runner) processFile(ctx context.Context, filename, outPath string) (int64, error) {
	if filepath.Clean(filename) == filepath.Clean(outPath) {
		return 0, fmt.Errorf("output path %q equals the input path", outPath)
	}

	info, err := os.Stat(filename)
	if err != nil {
		return 0, fmt.Errorf("getting file info: %w", err)
	}

	dir := r.Config.Direction()

	transform := encryption.EncryptFile
	if dir == encryption.Decrypt {
		transform = encryption.DecryptFile
	}

	opts := r.options(filename, progress.TotalFor(info.Size(), dir))

	if err := transform(ctx, filename, outPath, r.Password, opts...); err != nil {
		return 0, err
	}

	size, err := fileutil.FinalizeOutput(outPath, r.Config.PreserveTimestamps, info.ModTime())
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

// resolveFiles checks that every input is a regular file and drops duplicates.
func resolveFiles(inputs []string) ([]string, error) {
	var files []string

	seen := make(map[string]struct{})

	for _, input := range inputs {
		input = filepath.Clean(input)

		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", input, err)
		}

		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%q is not a regular file", input)
		}

		if _, ok := seen[input]; ok {
			continue
		}

		seen[input] = struct{}{}
		files = append(files, input)
	}

	if len(files) == 0 {
		return nil, errors.New("no files to process")
	}

	return files, nil
}

// dryRun previews what would be processed without actually encrypting/decrypting.
func (r *Runner) dryRun(files []string, start time.Time) error {
	var totalSize int64

	for _, file := range files {
		if !r.Config.Quiet {
			fmt.Fprintf(r.Stdout, "Processed %q -> %q\n", file, outputPath(file, r.Config))
		}

		if info, err := os.Stat(file); err == nil {
			totalSize += encryption.OutputSize(r.Config.Direction(), info.Size())
		}
	}

	if r.Config.Stats {
		printStats(r.Stderr, len(files), len(files), 0, totalSize, time.Since(start))
	}

	return nil
}

// outputPath appends the encrypt suffix, or strips it and appends the decrypt suffix.
func outputPath(filename string, cfg *config.Config) string {
	ext := cfg.Suffixes.Encrypt

	if cfg.Decrypt {
		filename = strings.TrimSuffix(filename, cfg.Suffixes.Encrypt)
		ext = cfg.Suffixes.Decrypt
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}

func printStats(w io.Writer, scanned, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(w, "\nStats\n")
	fmt.Fprintf(w, "  Inputs:    %d\n", scanned)
	fmt.Fprintf(w, "  Processed: %d\n", processed)
	fmt.Fprintf(w, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(w, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(w, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
