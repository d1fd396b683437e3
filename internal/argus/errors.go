package argus

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrStaleData is returned when the signature does not match, the table
	// is present but was not (or no longer is) published by a running monitor
	ErrStaleData = errors.New("argus: shared memory signature mismatch, data is not valid")
	ErrClosed    = errors.New("argus: table is closed")
)

// ConnectionError is returned when the shared memory region cannot be opened or mapped.
// This usually means that Argus Monitor is not running or its data interface is disabled.
type ConnectionError struct {
	Name string
	Op   string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("argus: failed to %s shared memory %s (error %d): %v", e.Op, e.Name, e.Code(), e.Err)
}

// Code returns the OS error code of the failed call, or -1 if there is none
func (e *ConnectionError) Code() int {
	var errno syscall.Errno
	if errors.As(e.Err, &errno) {
		return int(errno)
	}
	return -1
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IndexError is returned for accesses outside of the table bounds,
// which only happens with malformed table contents
type IndexError struct {
	Kind  string
	Index int
	Limit int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("argus: %s index %d out of range [0, %d)", e.Kind, e.Index, e.Limit)
}
