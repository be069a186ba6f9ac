package cfberr

import "fmt"

// wrapped is a Kind annotated with a message and/or an underlying cause.
// It unwraps to both the cause (if any) and the Kind, so
// errors.Is(err, cfberr.ErrNotFound) keeps working after wrapping.
type wrapped struct {
	kind    Kind
	message string
	cause   error
}

func (w *wrapped) Error() string {
	switch {
	case w.message != "" && w.cause != nil:
		return fmt.Sprintf("%s: %s: %s", w.kind, w.message, w.cause)
	case w.message != "":
		return fmt.Sprintf("%s: %s", w.kind, w.message)
	case w.cause != nil:
		return fmt.Sprintf("%s: %s", w.kind, w.cause)
	default:
		return string(w.kind)
	}
}

// Unwrap returns both the causal error (if any) and the Kind, so
// errors.Is(err, cfberr.ErrIO) still matches after a .Wrap(cause).
func (w *wrapped) Unwrap() []error {
	if w.cause != nil {
		return []error{w.cause, w.kind}
	}
	return []error{w.kind}
}

// IO wraps a raw backing-store error as an ErrIO, propagating it verbatim
// per the policy in the error-handling design (errors surface immediately,
// no retries).
func IO(cause error) error {
	if cause == nil {
		return nil
	}
	return ErrIO.Wrap(cause)
}
