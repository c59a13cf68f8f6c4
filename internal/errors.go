// errors.go
// Error taxonomy shared by the migration engines and steps
package internal

import (
	"errors"
	"fmt"
)

// Kind classifies a migration failure so callers can decide between
// warning-and-continue and halting the run.
type Kind int

const (
	KindUnknown Kind = iota
	// KindParse means a configuration artifact could not be parsed.
	KindParse
	// KindShapeMismatch means the patch engine could not find an expected anchor.
	KindShapeMismatch
	// KindTool means an external tool exited unsuccessfully.
	KindTool
	// KindIO means a file could not be read or written.
	KindIO
	// KindPrecondition means the run cannot start (e.g. no package.json).
	KindPrecondition
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindShapeMismatch:
		return "shape-mismatch"
	case KindTool:
		return "tool"
	case KindIO:
		return "io"
	case KindPrecondition:
		return "precondition"
	default:
		return "unknown"
	}
}

// Error wraps a base error with the path it concerns and an optional
// remediation hint shown to the user.
type Error struct {
	Kind Kind
	Path string
	Hint string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an *Error. A nil err yields nil.
func NewError(kind Kind, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Path: path, Err: err}
}

// WithHint returns err annotated with a remediation hint when err is an *Error.
func WithHint(err error, hint string) error {
	var e *Error
	if errors.As(err, &e) {
		cp := *e
		cp.Hint = hint
		return &cp
	}
	return err
}

// KindOf reports the Kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsFatal reports whether err should halt the whole run.
func IsFatal(err error) bool {
	return KindOf(err) == KindPrecondition
}
