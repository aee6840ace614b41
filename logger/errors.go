package logger

import (
	"errors"
	"fmt"
)

// ErrInvalidLevel is matched by every error SetLevel and ParseLevel return.
var ErrInvalidLevel = errors.New("logger: invalid log level")

// InvalidLevelError carries the rejected level name.
type InvalidLevelError struct {
	Value string
}

func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("logger: invalid log level %q (valid levels: %s)", e.Value, levelNames())
}

// Is makes errors.Is(err, ErrInvalidLevel) true.
func (e *InvalidLevelError) Is(target error) bool {
	return target == ErrInvalidLevel
}
