package preprocess

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every shape error the package returns.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError reports an input of the wrong shape for an operation.
type ArgumentError struct {
	Op     string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Op, ErrInvalidArgument, e.Reason)
}

func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }

func invalidArgument(op, format string, args ...any) error {
	return &ArgumentError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
