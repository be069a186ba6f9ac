// Package cfberr defines the typed error categories the cfb engine returns.
//
// The shape mirrors the teacher's DriverError family: a handful of named
// sentinel values that satisfy the error interface directly, plus a wrapped
// form that carries a message and/or an underlying cause while still
// unwrapping to the sentinel so callers can use errors.Is.
package cfberr

// Kind is a category of engine error. It satisfies the error interface on
// its own, so a bare Kind can be returned and compared with errors.Is.
type Kind string

func (k Kind) Error() string { return string(k) }

// WithMessage returns an error that carries both k and an explanatory
// message, while still unwrapping to k.
func (k Kind) WithMessage(message string) error {
	return &wrapped{kind: k, message: message}
}

// Wrap returns an error that carries both k and a causal error, while still
// unwrapping to k (and, transitively, to cause).
func (k Kind) Wrap(cause error) error {
	return &wrapped{kind: k, cause: cause}
}

const (
	// ErrInvalidData marks any on-disk structural violation: bad magic or
	// version, bad byte-order mark, out-of-bounds chain pointer, duplicate
	// chain linkage, a cycle in the directory tree, a malformed directory
	// entry, or a broken mini-stream length invariant.
	ErrInvalidData = Kind("cfb: invalid data")

	// ErrInvalidInput marks API misuse: seeking past the end of a stream,
	// opening a path whose entry is not a stream, or a path that fails
	// name validation.
	ErrInvalidInput = Kind("cfb: invalid input")

	// ErrNotFound marks a path that does not resolve to a directory entry.
	ErrNotFound = Kind("cfb: not found")

	// ErrUnsupported marks a code path that is explicitly deferred: more
	// than 109 FAT sectors without DIFAT-sector writing, mini-to-regular
	// tier migration on write, or directory creation/removal/rename.
	ErrUnsupported = Kind("cfb: unsupported")

	// ErrIO marks a failure propagated verbatim from the backing store.
	ErrIO = Kind("cfb: i/o error")
)
