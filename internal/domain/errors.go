package domain

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// Error kinds of a single rewrite. They are local to one declaration.
var (
	ErrMalformedAttribute = errors.Base("malformed attribute")
	ErrInvariantViolation = errors.Base("invariant violation")
	ErrTreeMutation       = errors.Base("tree mutation failure")
)

// RewriteError reports why one declaration was not rewritten.
type RewriteError struct {
	Kind   error
	Method string
	Line   int
	Reason string
	Err    error
}

func (e *RewriteError) Error() string {
	msg := fmt.Sprintf("%s: %s (line %d)", e.Kind, e.Method, e.Line)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RewriteError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NewRewriteError builds a RewriteError for method. If cause already carries
// one of the error kinds, that kind wins over kind.
func NewRewriteError(kind error, method *MethodDeclaration, reason string, cause error) *RewriteError {
	for _, k := range []error{ErrTreeMutation, ErrInvariantViolation, ErrMalformedAttribute} {
		if cause != nil && errors.Is(cause, k) {
			kind = k
			break
		}
	}
	e := &RewriteError{Kind: kind, Reason: reason, Err: cause}
	if method != nil {
		e.Method = method.Name
		e.Line = method.Line
	}
	return e
}

// ErrorKind names the kind of err for reports: "malformed_attribute",
// "invariant_violation", "tree_mutation" or "error".
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrMalformedAttribute):
		return "malformed_attribute"
	case errors.Is(err, ErrInvariantViolation):
		return "invariant_violation"
	case errors.Is(err, ErrTreeMutation):
		return "tree_mutation"
	default:
		return "error"
	}
}
