package cfb

import (
	cfberr "github.com/dargueta/cfb/errors"
	"github.com/dargueta/cfb/pathutil"
	"github.com/hashicorp/go-multierror"
)

// validateDIFATAndFAT checks the structural invariants over the FAT that
// Open cannot verify while it is still being assembled (spec §3/§7): every
// live chain pointer must be in range, the sector holding the FAT itself
// must be marked fatSector, and no sector may be the target of more than
// one chain pointer (a "duplicate chain linkage" — two chains merging
// into the same sector is as invalid as a chain that never terminates).
func (f *File) validateDIFATAndFAT() error {
	var result *multierror.Error
	for _, fatSec := range f.difat {
		if fatSec >= uint32(len(f.fat)) {
			result = multierror.Append(result, cfberr.ErrInvalidData.WithMessage(
				"FAT sector index out of range"))
			continue
		}
		if f.fat[fatSec] != fatSector {
			result = multierror.Append(result, cfberr.ErrInvalidData.WithMessage(
				"sector holding FAT entries not marked as such"))
		}
	}

	pointedTo := make(map[uint32]bool, len(f.fat))
	for _, entry := range f.fat {
		if entry > maxRegularSector {
			continue
		}
		if entry >= uint32(len(f.fat)) {
			result = multierror.Append(result, cfberr.ErrInvalidData.WithMessage(
				"FAT chain pointer out of range"))
			continue
		}
		if pointedTo[entry] {
			result = multierror.Append(result, cfberr.ErrInvalidData.WithMessage(
				"duplicate chain linkage: sector referenced by more than one predecessor"))
			continue
		}
		pointedTo[entry] = true
	}
	return result.ErrorOrNil()
}

// validateMiniFAT checks that every live MiniFAT chain pointer is in
// range and that no mini-sector is the target of more than one chain
// pointer.
func (f *File) validateMiniFAT() error {
	var result *multierror.Error
	pointedTo := make(map[uint32]bool, len(f.minifat))
	for _, entry := range f.minifat {
		if entry > maxRegularSector {
			continue
		}
		if entry >= uint32(len(f.minifat)) {
			result = multierror.Append(result, cfberr.ErrInvalidData.WithMessage(
				"MiniFAT chain pointer out of range"))
			continue
		}
		if pointedTo[entry] {
			result = multierror.Append(result, cfberr.ErrInvalidData.WithMessage(
				"duplicate chain linkage: mini-sector referenced by more than one predecessor"))
			continue
		}
		pointedTo[entry] = true
	}
	return result.ErrorOrNil()
}

// validateDirectory walks every storage's sibling tree, checking that
// child/sibling indices are in range, that the root entry is present and
// well-formed, and that siblings are correctly ordered by the CFB name
// comparator (spec §4.5/§4.6).
func (f *File) validateDirectory() error {
	var result *multierror.Error

	if len(f.directory) == 0 || !f.directory[rootStreamID].isRoot() {
		result = multierror.Append(result, cfberr.ErrInvalidData.WithMessage(
			"missing or malformed root directory entry"))
		return result.ErrorOrNil()
	}

	root := &f.directory[rootStreamID]
	if root.name != rootDirName {
		result = multierror.Append(result, cfberr.ErrInvalidData.WithMessage(
			"root directory entry is not named \""+rootDirName+"\""))
	}
	if root.streamLen%miniSectorLen != 0 {
		result = multierror.Append(result, cfberr.ErrInvalidData.WithMessage(
			"root mini-stream length is not a multiple of the mini-sector size"))
	} else if root.streamLen != miniSectorLen*uint64(len(f.minifat)) {
		result = multierror.Append(result, cfberr.ErrInvalidData.WithMessage(
			"root mini-stream length does not match the MiniFAT's size"))
	}

	for i := range f.directory {
		entry := &f.directory[i]
		if entry.objType == objTypeUnallocated {
			continue
		}
		for _, sibling := range []uint32{entry.leftSibling, entry.rightSibling, entry.child} {
			if sibling != noStream && sibling >= uint32(len(f.directory)) {
				result = multierror.Append(result, cfberr.ErrInvalidData.WithMessage(
					"directory sibling/child index out of range"))
			}
		}
	}

	for i := range f.directory {
		entry := &f.directory[i]
		if !entry.isStorage() {
			continue
		}
		if err := f.validateSiblingTree(entry.child); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// validateSiblingTree walks the sibling tree rooted at streamID in order,
// checking that names appear in strictly increasing order per the CFB
// comparator, and that no entry is visited twice — a cycle in the tree
// (lib.rs's "Malformed directory (loop in tree)" check) would otherwise
// recurse forever instead of surfacing as ErrInvalidData.
func (f *File) validateSiblingTree(streamID uint32) error {
	visited := make(map[uint32]bool)
	var prev *string
	var walk func(id uint32) error
	walk = func(id uint32) error {
		if id == noStream {
			return nil
		}
		if id >= uint32(len(f.directory)) {
			return cfberr.ErrInvalidData.WithMessage("directory sibling index out of range")
		}
		if visited[id] {
			return cfberr.ErrInvalidData.WithMessage("cycle in directory sibling tree")
		}
		visited[id] = true
		entry := &f.directory[id]
		if err := walk(entry.leftSibling); err != nil {
			return err
		}
		if prev != nil && pathutil.CompareNames(*prev, entry.name) >= 0 {
			return cfberr.ErrInvalidData.WithMessage(
				"directory siblings out of order: " + entry.name)
		}
		name := entry.name
		prev = &name
		return walk(entry.rightSibling)
	}
	return walk(streamID)
}

// StorageIterator yields the direct children of a storage in the order
// the CFB name comparator defines for their sibling tree (spec §4.5).
type StorageIterator struct {
	file    *File
	parent  string
	entries []Entry
	pos     int
}

// ReadStorage returns an iterator over the direct children of the
// storage at path.
func (f *File) ReadStorage(path string) (*StorageIterator, error) {
	streamID, err := f.streamIDForPath(path)
	if err != nil {
		return nil, err
	}
	if !f.directory[streamID].isStorage() {
		return nil, cfberr.ErrInvalidInput.WithMessage(path + " is not a storage")
	}

	var entries []Entry
	var walk func(id uint32)
	walk = func(id uint32) {
		if id == noStream {
			return
		}
		entry := &f.directory[id]
		walk(entry.leftSibling)
		entries = append(entries, newEntry(entry, pathutil.Join(path, entry.name)))
		walk(entry.rightSibling)
	}
	walk(f.directory[streamID].child)

	return &StorageIterator{file: f, parent: path, entries: entries}, nil
}

// Next returns the next child entry, and false once the iterator is
// exhausted.
func (it *StorageIterator) Next() (Entry, bool) {
	if it.pos >= len(it.entries) {
		return Entry{}, false
	}
	entry := it.entries[it.pos]
	it.pos++
	return entry, true
}
