package wire

import (
	"errors"
	"fmt"
)

// ErrConversionFailed is matched by every decoding failure, so callers can
// tell a bad document from an empty one.
var ErrConversionFailed = errors.New("conversion failed")

// ConversionError describes why a document could not be decoded.
type ConversionError struct {
	Reason string
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrConversionFailed, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrConversionFailed, e.Reason)
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversionFailed
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func failed(reason string, err error) error {
	return &ConversionError{Reason: reason, Err: err}
}
