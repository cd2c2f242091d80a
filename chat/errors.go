package chat

import "fmt"

// ValidationError is returned when a message is missing a required field.
// It is never retried; the realtime path turns it into a failed ack.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("chat: missing required field %q", e.Field)
}

// StorageError wraps a persistence failure. The caller converts it into a
// generic failure response and logs it; no retry happens at this layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("chat: storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
