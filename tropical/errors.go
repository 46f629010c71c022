package tropical

import (
	"errors"

	"github.com/cwbudde/algo-tropical/internal/scratch"
)

var (
	// ErrNegativeDimension is returned when n < 0.
	ErrNegativeDimension = errors.New("tropical: negative dimension")

	// ErrLengthMismatch is returned when a buffer does not hold n*n values.
	ErrLengthMismatch = errors.New("tropical: buffer length does not match n*n")

	// ErrAliased is returned when result and data share memory.
	ErrAliased = errors.New("tropical: result and data overlap")

	// ErrUnknownKernel is returned by StepWith for an unregistered name.
	ErrUnknownKernel = errors.New("tropical: unknown kernel")

	// ErrAllocation is wrapped when a kernel cannot obtain its scratch
	// buffers within the configured limit.
	ErrAllocation = scratch.ErrAllocation

	// ErrNoKernel is returned when no registered kernel fits the CPU.
	ErrNoKernel = errors.New("tropical: no kernel registered")
)
