package logic

import "fmt"

// Result represents the outcome of processing a single input.
type Result struct {
	// Input file path
	Input string

	// Output file path
	Output string

	// Output file size in bytes
	OutputSize int64

	// Any error that occurred during processing
	Error error
}

// FailedError summarizes the inputs that could not be processed.
// Each cause is logged when it occurs; Unwrap exposes them to errors.Is and errors.As.
type FailedError struct {
	// Failed is the number of inputs that failed.
	Failed int

	// Total is the number of inputs.
	Total int

	// Errs holds one error per failed input.
	Errs []error
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("%d of %d files failed", e.Failed, e.Total)
}

// Unwrap returns the per-input errors.
func (e *FailedError) Unwrap() []error {
	return e.Errs
}
