// Package pathutil implements the slash-delimited path syntax used to
// address storages and streams inside a compound file, and the CFB
// directory name comparator used to keep the red-black sibling trees
// ordered.
//
// Paths are always absolute and rooted at "/", the way the teacher's
// driver package normalizes paths with posixpath before resolving them
// against a file system implementation.
package pathutil

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	cfberr "github.com/dargueta/cfb/errors"
)

// MaxNameLength is the longest a single path component may be, in UTF-16
// code units, not counting the NUL terminator that the on-disk directory
// entry adds.
const MaxNameLength = 31

// disallowed holds the characters MS-CFB forbids in a storage or stream
// name, on top of control characters.
const disallowed = `/\:!`

// Split breaks an absolute, slash-delimited path into its validated
// components. "/" itself splits into zero components (it addresses the
// root storage).
func Split(path string) ([]string, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, cfberr.ErrInvalidInput.WithMessage(
			"path must be absolute: " + path)
	}
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, nil
	}
	parts := strings.Split(trimmed, "/")
	for _, part := range parts {
		if err := ValidateName(part); err != nil {
			return nil, err
		}
	}
	return parts, nil
}

// ValidateName checks a single path component against the CFB naming
// rules: non-empty, at most MaxNameLength UTF-16 code units, none of the
// characters in "/\:!", and no control characters.
func ValidateName(name string) error {
	if name == "" {
		return cfberr.ErrInvalidInput.WithMessage("empty path component")
	}
	if !utf8.ValidString(name) {
		return cfberr.ErrInvalidInput.WithMessage(
			"path component is not valid UTF-8: " + name)
	}
	units := utf16.Encode([]rune(name))
	if len(units) > MaxNameLength {
		return cfberr.ErrInvalidInput.WithMessage(
			"path component longer than 31 UTF-16 code units: " + name)
	}
	if strings.ContainsAny(name, disallowed) {
		return cfberr.ErrInvalidInput.WithMessage(
			"path component contains a reserved character: " + name)
	}
	for _, r := range name {
		if r < 0x20 {
			return cfberr.ErrInvalidInput.WithMessage(
				"path component contains a control character: " + name)
		}
	}
	return nil
}

// Join appends a name to a canonicalized parent path, the way
// path.Join would for a POSIX path, but without collapsing "..".
func Join(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

// foldUnit upper-cases a single UTF-16 code unit using the ASCII rule at a
// minimum, which is all MS-CFB strictly requires; this also folds the
// Latin-1 supplement range, covering the common non-ASCII case.
func foldUnit(u uint16) uint16 {
	switch {
	case u >= 'a' && u <= 'z':
		return u - ('a' - 'A')
	case u >= 0xE0 && u <= 0xFE && u != 0xF7:
		return u - 0x20
	default:
		return u
	}
}

// CompareNames implements the CFB directory name comparator (MS-CFB
// 2.6.4): shorter names (by UTF-16 code-unit count) sort before longer
// ones; names of equal length are compared code-unit by code-unit after
// case-folding. Returns a negative number if a < b, zero if equal, and a
// positive number if a > b.
func CompareNames(a, b string) int {
	au := utf16.Encode([]rune(a))
	bu := utf16.Encode([]rune(b))
	if len(au) != len(bu) {
		return len(au) - len(bu)
	}
	for i := range au {
		fa, fb := foldUnit(au[i]), foldUnit(bu[i])
		if fa != fb {
			return int(fa) - int(fb)
		}
	}
	return 0
}
