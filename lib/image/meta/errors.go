package meta

import (
	"errors"
	"fmt"
	"io"
)

var (
	// The stream does not start with the magic of the format being read.
	ErrInvalidSignature = errors.New("invalid signature")

	// No reader recognised the stream.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// CorruptImageError is returned when a structure in the stream holds a value
// the format does not allow, such as an unknown block type.
type CorruptImageError struct {
	Detail string
}

func (e *CorruptImageError) Error() string {
	return "corrupt image: " + e.Detail
}

// Corrupt builds a *CorruptImageError from a format string.
func Corrupt(format string, args ...interface{}) error {
	return &CorruptImageError{Detail: fmt.Sprintf(format, args...)}
}

// IOError wraps a failure of the underlying stream.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return "i/o error: " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// WrapIO wraps err as an *IOError. nil stays nil, and an err which is already
// an *IOError is returned as is. io.EOF becomes io.ErrUnexpectedEOF: callers
// only read when they expect more data.
func WrapIO(err error) error {
	if err == nil {
		return nil
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return err
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return &IOError{Err: err}
}
