package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// InputError is a failure caused by operator input. Its message is meant to
// be shown verbatim on the console.
type InputError struct {
	marker  error
	message string
}

// Input builds an InputError tagged with marker (ErrValidation when nil).
func Input(marker error, format string, args ...any) error {
	if marker == nil {
		marker = ErrValidation
	}
	return &InputError{marker: marker, message: fmt.Sprintf(format, args...)}
}

func (e *InputError) Error() string { return e.message }

func (e *InputError) Unwrap() error { return e.marker }

// IsInputError reports whether err was caused by operator input (bad flags,
// unknown titles, an aborted selection) rather than by the environment.
func IsInputError(err error) bool {
	var input *InputError
	return errors.As(err, &input)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
