package cfb

import cfberr "github.com/dargueta/cfb/errors"

// Version is the CFB format revision in use, which determines the sector
// size and the width of the stream-length field.
type Version uint16

const (
	// V3 uses 512-byte sectors and masks stream lengths to 32 bits.
	V3 Version = 3
	// V4 uses 4096-byte sectors and carries the full 64-bit stream length.
	V4 Version = 4
)

// versionFromNumber maps a header's major-version field to a Version,
// rejecting anything other than 3 or 4.
func versionFromNumber(number uint16) (Version, error) {
	switch number {
	case 3:
		return V3, nil
	case 4:
		return V4, nil
	default:
		return 0, cfberr.ErrInvalidData.WithMessage(
			"unsupported CFB version")
	}
}

// Number returns the on-disk major-version field for v.
func (v Version) Number() uint16 { return uint16(v) }

// SectorShift returns the power-of-two shift defining the sector size:
// 9 (512 bytes) for V3, 12 (4096 bytes) for V4.
func (v Version) SectorShift() uint16 {
	if v == V3 {
		return 9
	}
	return 12
}

// SectorLen returns the size, in bytes, of a regular sector.
func (v Version) SectorLen() int { return 1 << v.SectorShift() }

// StreamLenMask returns the mask applied to a directory entry's raw
// 64-bit stream-length field: V3 clamps it to 32 bits, V4 uses all 64.
func (v Version) StreamLenMask() uint64 {
	if v == V3 {
		return 0xFFFFFFFF
	}
	return 0xFFFFFFFFFFFFFFFF
}

// fatEntriesPerSector is the number of uint32 FAT/MiniFAT/DIFAT entries
// that fit in one regular sector.
func (v Version) fatEntriesPerSector() int { return v.SectorLen() / 4 }

// dirEntriesPerSector is the number of 128-byte directory entries that
// fit in one regular sector.
func (v Version) dirEntriesPerSector() int { return v.SectorLen() / dirEntryLen }
