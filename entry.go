package cfb

import (
	"time"

	"github.com/dargueta/cfb/internal/filetime"
)

// Entry describes a storage or stream object in the directory tree,
// without exposing the internal dirEntry representation.
type Entry struct {
	path         string
	name         string
	isStorage    bool
	isRoot       bool
	len          uint64
	creationTime uint64
	modifiedTime uint64
	clsid        [16]byte
}

func newEntry(e *dirEntry, path string) Entry {
	return Entry{
		path:         path,
		name:         e.name,
		isStorage:    e.isStorage(),
		isRoot:       e.isRoot(),
		len:          e.streamLen,
		creationTime: e.creationTime,
		modifiedTime: e.modifiedTime,
		clsid:        e.clsid,
	}
}

// Path returns the absolute path this Entry was looked up with.
func (e Entry) Path() string { return e.path }

// Name returns the object's own name, without its parent path.
func (e Entry) Name() string { return e.name }

// IsStorage reports whether this entry is a storage (including the
// root storage).
func (e Entry) IsStorage() bool { return e.isStorage }

// IsStream reports whether this entry is a stream.
func (e Entry) IsStream() bool { return !e.isStorage }

// IsRoot reports whether this entry is the root storage.
func (e Entry) IsRoot() bool { return e.isRoot }

// Len returns the length in bytes recorded in the object's directory
// entry. For a stream this is its data length; for the root storage it is
// the length of the mini-stream; other storages normally record 0.
func (e Entry) Len() uint64 { return e.len }

// CLSID returns the object's class identifier, carried through
// unmodified since CFB readers/writers in this engine never interpret it.
func (e Entry) CLSID() [16]byte { return e.clsid }

// Created returns the object's creation time.
func (e Entry) Created() time.Time { return filetime.ToTime(e.creationTime) }

// Modified returns the object's last-modified time.
func (e Entry) Modified() time.Time { return filetime.ToTime(e.modifiedTime) }
