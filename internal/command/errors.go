package command

import "errors"

var (
	ErrMalformedCommand = errors.New("malformed command")

	// ErrOutOfMemory is kept for parity with the error taxonomy of the wire
	// protocol. A failed allocation aborts the Go runtime, so nothing in this
	// package returns it.
	ErrOutOfMemory = errors.New("out of memory")
)
