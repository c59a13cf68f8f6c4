package lintmigrate

import "github.com/YakDriver/lintmigrate/internal"

// Error is a migration failure with the file it concerns and an optional
// remediation hint.
type Error = internal.Error

// Kind classifies an Error.
type Kind = internal.Kind

const (
	KindUnknown       = internal.KindUnknown
	KindParse         = internal.KindParse
	KindShapeMismatch = internal.KindShapeMismatch
	KindTool          = internal.KindTool
	KindIO            = internal.KindIO
	KindPrecondition  = internal.KindPrecondition
)

// NewError wraps err with a kind and the path it concerns. A nil err yields nil.
func NewError(kind Kind, path string, err error) error {
	return internal.NewError(kind, path, err)
}

// KindOf reports the Kind of err, or KindUnknown.
func KindOf(err error) Kind {
	return internal.KindOf(err)
}

// IsFatal reports whether err stops a whole run rather than a single step.
func IsFatal(err error) bool {
	return internal.IsFatal(err)
}
