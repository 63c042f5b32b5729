// Package progress renders byte-count progress for the command line.
package progress

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/encutil/internal/encryption"
)

// DefaultInterval is the minimum time between two rendered updates.
const DefaultInterval = 100 * time.Millisecond

// Message formats done out of total bytes, e.g. "Progress: 42.00% - 1.0 MiB/2.4 MiB".
// An unknown (zero) total renders the percentage as "n/a".
func Message(done, total int64) string {
	return fmt.Sprintf("Progress: %s - %s/%s", Percentage(done, total),
		humanize.IBytes(uint64(max(0, done))), humanize.IBytes(uint64(max(0, total)))) //nolint:gosec
}

// Percentage returns done/total as a percentage with two decimals.
func Percentage(done, total int64) string {
	if total <= 0 {
		return "n/a"
	}

	return fmt.Sprintf("%.2f%%", float64(done)/float64(total)*100) //nolint:mnd
}

// Total returns the number of bytes the engine will report for the file at path:
// its size when encrypting, its size minus the salt when decrypting.
func Total(path string, dir encryption.Direction) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("getting file info for %q: %w", path, err)
	}

	return TotalFor(info.Size(), dir), nil
}

// TotalFor is Total for an input of known size.
func TotalFor(size int64, dir encryption.Direction) int64 {
	if dir == encryption.Decrypt {
		return max(size-encryption.SaltSize, 0)
	}

	return size
}

// Reporter throttles progress updates for one operation and hands rendered messages to a sink.
type Reporter struct {
	mu       sync.Mutex
	sink     func(done, total int64, message string)
	total    int64
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewReporter creates a Reporter for an operation over total bytes.
func NewReporter(total int64, sink func(done, total int64, message string)) *Reporter {
	return &Reporter{
		sink:     sink,
		total:    total,
		interval: DefaultInterval,
		now:      time.Now,
	}
}

// WithInterval overrides the throttling interval. Zero disables throttling.
func (r *Reporter) WithInterval(interval time.Duration) *Reporter {
	r.interval = interval

	return r
}

// Update records done bytes. Updates arriving sooner than the interval after the previous one are
// dropped, except the one that completes the operation.
func (r *Reporter) Update(done int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	complete := r.total > 0 && done >= r.total
	if !complete && !r.last.IsZero() && now.Sub(r.last) < r.interval {
		return
	}

	r.last = now

	r.sink(done, r.total, Message(done, r.total))
}

// Func adapts the reporter to the engine's progress callback.
func (r *Reporter) Func() encryption.ProgressFunc {
	return r.Update
}
