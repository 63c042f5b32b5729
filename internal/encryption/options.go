package encryption

import "crypto/aes"

const (
	// DefaultChunkSize bounds the memory used per read when streaming files.
	DefaultChunkSize = 1 << 20
	// StringChunkSize is the chunk size used for short raw-string inputs.
	StringChunkSize = 512
	// MinChunkSize is the smallest accepted chunk size.
	MinChunkSize = aes.BlockSize
)

// ProgressFunc receives a cumulative byte count after each chunk has been written to the sink.
// It must not block indefinitely.
//
// Encryption counts plaintext bytes consumed. Decryption counts ciphertext bytes after the salt
// whose plaintext has been written; the final block is held back until the padding is checked,
// so the last call, reporting the full count, follows the final write.
type ProgressFunc func(done int64)

// Options holds the per-call settings of a transformation.
// The zero value is valid and resolves to the defaults.
type Options struct {
	// ChunkSize is the number of bytes read from the source per step.
	ChunkSize int

	// Iterations is the PBKDF2 iteration count.
	Iterations int

	// Progress is invoked after every chunk when non-nil.
	Progress ProgressFunc
}

// Option configures Options.
type Option func(*Options)

// WithChunkSize sets the chunk size. Values below MinChunkSize are raised to it.
func WithChunkSize(size int) Option {
	return func(o *Options) {
		o.ChunkSize = size
	}
}

// WithIterations overrides the PBKDF2 iteration count.
// Ciphertexts are only interoperable when both sides use the same count.
func WithIterations(iterations int) Option {
	return func(o *Options) {
		o.Iterations = iterations
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) {
		o.Progress = fn
	}
}

// newOptions applies opts over the defaults.
func newOptions(opts ...Option) Options {
	o := Options{
		ChunkSize:  DefaultChunkSize,
		Iterations: DefaultIterations,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.ChunkSize < MinChunkSize {
		o.ChunkSize = MinChunkSize
	}

	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}

	return o
}

// fit shrinks the chunk size to size when the whole input is already known to be smaller,
// avoiding a full default-sized allocation for short inputs.
func (o Options) fit(size int64) Options {
	if size < int64(o.ChunkSize) {
		o.ChunkSize = max(int(size), MinChunkSize)
	}

	return o
}
