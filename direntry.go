package cfb

import (
	"io"
	"unicode/utf16"

	cfberr "github.com/dargueta/cfb/errors"
	"github.com/dargueta/cfb/pathutil"
)

// dirEntry is the in-memory form of a 128-byte on-disk directory record
// (spec §3/§4.6). CLSID and state bits are carried even though nothing in
// this engine interprets them, so that a round trip through Open/Flush
// preserves them instead of zeroing them out (spec §9 Open Question).
type dirEntry struct {
	name         string
	objType      uint8
	color        uint8
	leftSibling  uint32
	rightSibling uint32
	child        uint32
	clsid        [16]byte
	stateBits    uint32
	creationTime uint64
	modifiedTime uint64
	startSector  uint32
	streamLen    uint64
}

func unallocatedDirEntry() dirEntry {
	return dirEntry{objType: objTypeUnallocated}
}

func (e *dirEntry) isRoot() bool    { return e.objType == objTypeRoot }
func (e *dirEntry) isStream() bool  { return e.objType == objTypeStream }
func (e *dirEntry) isStorage() bool { return e.objType == objTypeStorage || e.objType == objTypeRoot }

// readDirEntry decodes one 128-byte directory record from store at its
// current position, validating every field per spec §4.6.
func readDirEntry(store BackingStore, version Version) (dirEntry, error) {
	var nameUnits [32]uint16
	for i := range nameUnits {
		u, err := readU16(store)
		if err != nil {
			return dirEntry{}, err
		}
		nameUnits[i] = u
	}
	nameLenBytes, err := readU16(store)
	if err != nil {
		return dirEntry{}, err
	}
	if nameLenBytes > 64 || nameLenBytes%2 != 0 {
		return dirEntry{}, cfberr.ErrInvalidData.WithMessage(
			"invalid name length in directory entry")
	}
	nameLenChars := 0
	if nameLenBytes > 0 {
		nameLenChars = int(nameLenBytes)/2 - 1
	}
	if nameLenChars >= len(nameUnits) {
		return dirEntry{}, cfberr.ErrInvalidData.WithMessage(
			"directory entry name length out of range")
	}
	if nameUnits[nameLenChars] != 0 {
		return dirEntry{}, cfberr.ErrInvalidData.WithMessage(
			"directory entry name must be null-terminated")
	}
	name := string(utf16.Decode(nameUnits[:nameLenChars]))
	if name != "" && name != rootDirName {
		if pathutil.ValidateName(name) != nil {
			return dirEntry{}, cfberr.ErrInvalidData.WithMessage(
				"invalid name in directory entry: " + name)
		}
	}

	objType, err := readByte(store)
	if err != nil {
		return dirEntry{}, err
	}
	color, err := readByte(store)
	if err != nil {
		return dirEntry{}, err
	}
	if color != colorRed && color != colorBlack {
		return dirEntry{}, cfberr.ErrInvalidData.WithMessage(
			"invalid color in directory entry")
	}

	leftSibling, err := readU32(store)
	if err != nil {
		return dirEntry{}, err
	}
	if err := validSiblingOrChild(leftSibling); err != nil {
		return dirEntry{}, err
	}
	rightSibling, err := readU32(store)
	if err != nil {
		return dirEntry{}, err
	}
	if err := validSiblingOrChild(rightSibling); err != nil {
		return dirEntry{}, err
	}
	child, err := readU32(store)
	if err != nil {
		return dirEntry{}, err
	}
	if err := validSiblingOrChild(child); err != nil {
		return dirEntry{}, err
	}

	var clsid [16]byte
	if _, err := io.ReadFull(store, clsid[:]); err != nil {
		return dirEntry{}, cfberr.IO(err)
	}
	stateBits, err := readU32(store)
	if err != nil {
		return dirEntry{}, err
	}
	creationTime, err := readU64(store)
	if err != nil {
		return dirEntry{}, err
	}
	modifiedTime, err := readU64(store)
	if err != nil {
		return dirEntry{}, err
	}
	startSector, err := readU32(store)
	if err != nil {
		return dirEntry{}, err
	}
	rawStreamLen, err := readU64(store)
	if err != nil {
		return dirEntry{}, err
	}

	return dirEntry{
		name:         name,
		objType:      objType,
		color:        color,
		leftSibling:  leftSibling,
		rightSibling: rightSibling,
		child:        child,
		clsid:        clsid,
		stateBits:    stateBits,
		creationTime: creationTime,
		modifiedTime: modifiedTime,
		startSector:  startSector,
		streamLen:    rawStreamLen & version.StreamLenMask(),
	}, nil
}

func validSiblingOrChild(id uint32) error {
	if id != noStream && id > maxRegularStreamID {
		return cfberr.ErrInvalidData.WithMessage(
			"invalid sibling or child index in directory entry")
	}
	return nil
}

// write emits the 128-byte on-disk form of e to store at its current
// position. CLSID and state bits are written back verbatim rather than
// zeroed, so that Open -> Flush round-trips preserve them.
func (e *dirEntry) write(store BackingStore) error {
	nameUnits := utf16.Encode([]rune(e.name))
	if len(nameUnits) >= 32 {
		return cfberr.ErrInvalidData.WithMessage(
			"directory entry name too long to encode")
	}
	for _, u := range nameUnits {
		if err := writeU16(store, u); err != nil {
			return err
		}
	}
	for i := len(nameUnits); i < 32; i++ {
		if err := writeU16(store, 0); err != nil {
			return err
		}
	}
	if err := writeU16(store, uint16(len(nameUnits)+1)*2); err != nil {
		return err
	}
	if err := writeByte(store, e.objType); err != nil {
		return err
	}
	if err := writeByte(store, e.color); err != nil {
		return err
	}
	if err := writeU32(store, e.leftSibling); err != nil {
		return err
	}
	if err := writeU32(store, e.rightSibling); err != nil {
		return err
	}
	if err := writeU32(store, e.child); err != nil {
		return err
	}
	if _, err := store.Write(e.clsid[:]); err != nil {
		return cfberr.IO(err)
	}
	if err := writeU32(store, e.stateBits); err != nil {
		return err
	}
	if err := writeU64(store, e.creationTime); err != nil {
		return err
	}
	if err := writeU64(store, e.modifiedTime); err != nil {
		return err
	}
	if err := writeU32(store, e.startSector); err != nil {
		return err
	}
	return writeU64(store, e.streamLen)
}

func readByte(store BackingStore) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(store, buf[:]); err != nil {
		return 0, cfberr.IO(err)
	}
	return buf[0], nil
}

func writeByte(store BackingStore, v uint8) error {
	_, err := store.Write([]byte{v})
	return cfberr.IO(err)
}

