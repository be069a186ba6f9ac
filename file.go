// Package cfb reads and writes Microsoft Compound File Binary (CFB)
// containers — the "filesystem in a file" format underlying legacy
// Office documents and other OLE structured storage.
//
// A File owns a BackingStore exclusively for its lifetime: the sector
// allocator (FAT and DIFAT), the mini-sector allocator (MiniFAT and the
// mini-stream), and the directory tree of storages and streams. Every
// mutation is written through to the backing store immediately; there is
// no separate dirty cache to flush later, though BackingStores that
// buffer internally (like *os.File) still need an explicit Flush.
//
// Creating and removing storages and streams is out of scope (spec §9):
// CreateWithVersion produces only the empty root storage, and OpenStream
// only resolves paths that already name a stream.
//
//	store, _ := os.OpenFile("existing.cfb", os.O_RDWR, 0)
//	f, _ := cfb.Open(store)
//	stream, _ := f.OpenStream("/Hello")
//	stream.Write([]byte("world"))
//	stream.Close()
//	f.Flush()
package cfb

import (
	cfberr "github.com/dargueta/cfb/errors"
	"github.com/dargueta/cfb/internal/filetime"
	"github.com/dargueta/cfb/pathutil"
)

// File is an open compound file: the single owner of a BackingStore, and
// of all FAT/MiniFAT/directory state describing its contents.
type File struct {
	store   BackingStore
	version Version

	difat []uint32
	fat   []uint32
	fatIx *allocator

	minifat            []uint32
	minifatStartSector uint32
	minifatIx          *allocator

	directory            []dirEntry
	directoryStartSector uint32

	// streamOpen enforces the single-live-cursor rule from the
	// concurrency model: only one Stream may be open against a File at
	// a time because every Stream mutates File state directly.
	streamOpen bool
}

// Version returns the CFB format revision this file was opened or
// created with.
func (f *File) Version() Version { return f.version }

// IntoStore flushes the file and returns the underlying BackingStore,
// relinquishing the File's ownership of it.
func (f *File) IntoStore() (BackingStore, error) {
	if err := f.Flush(); err != nil {
		return nil, err
	}
	return f.store, nil
}

// Flush propagates any buffering the backing store itself does. Every
// structural mutation is already written through by the time a File
// method returns, so Flush exists only for backing stores like *os.File
// that buffer at the OS level.
func (f *File) Flush() error {
	return flushStore(f.store)
}

func (f *File) rootEntry() *dirEntry {
	return &f.directory[rootStreamID]
}

// streamIDForPath resolves path to a stream ID by walking the directory
// tree one path component at a time, per spec §4.5.
func (f *File) streamIDForPath(path string) (uint32, error) {
	names, err := pathutil.Split(path)
	if err != nil {
		return 0, err
	}
	streamID := uint32(rootStreamID)
	for _, name := range names {
		streamID = f.directory[streamID].child
		for {
			if streamID == noStream {
				return 0, cfberr.ErrNotFound.WithMessage("no such object: " + path)
			}
			entry := &f.directory[streamID]
			switch cmp := pathutil.CompareNames(name, entry.name); {
			case cmp == 0:
				goto matched
			case cmp < 0:
				streamID = entry.leftSibling
			default:
				streamID = entry.rightSibling
			}
		}
	matched:
	}
	return streamID, nil
}

// Entry returns metadata about the storage or stream at path.
func (f *File) Entry(path string) (Entry, error) {
	streamID, err := f.streamIDForPath(path)
	if err != nil {
		return Entry{}, err
	}
	return newEntry(&f.directory[streamID], path), nil
}

// Touch updates the modified_time of the object at path to the current
// time. It has no effect when called on the root storage.
func (f *File) Touch(path string) error {
	streamID, err := f.streamIDForPath(path)
	if err != nil {
		return err
	}
	if streamID == rootStreamID {
		return nil
	}
	return f.touchStreamID(streamID)
}

// touchStreamID writes a fresh modified_time for streamID both in memory
// and at its canonical on-disk offset (write-through, per §5).
func (f *File) touchStreamID(streamID uint32) error {
	now := filetime.NowTicks()
	if err := f.seekWithinDirEntry(streamID, 108); err != nil {
		return err
	}
	if err := writeU64(f.store, now); err != nil {
		return err
	}
	f.directory[streamID].modifiedTime = now
	return nil
}
