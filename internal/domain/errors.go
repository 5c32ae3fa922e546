package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound                  = errors.New("not found")
	ErrInvalidConfig             = errors.New("invalid config")
	ErrInvalidInput              = errors.New("invalid input")
	ErrInvalidConcentrationOrder = errors.New("target concentration must be greater than initial concentration")
	ErrUnreachableTarget         = errors.New("target concentration of 100% cannot be reached by adding sugar")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound                  ErrorKind = "not_found"
	KindInvalidConfig             ErrorKind = "invalid_config"
	KindInvalidInput              ErrorKind = "invalid_input"
	KindInvalidConcentrationOrder ErrorKind = "invalid_concentration_order"
	KindUnreachableTarget         ErrorKind = "unreachable_target"
	KindExecution                 ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// KindOf returns the kind of the outermost OpError in err's chain, or
// KindExecution when err carries none.
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return KindExecution
}

func invalidInput(op, field, msg string) error {
	return &OpError{
		Op:   op,
		Kind: KindInvalidInput,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, ErrInvalidInput),
	}
}
