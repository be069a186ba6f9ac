package cfb

import (
	"bytes"
	"io"

	cfberr "github.com/dargueta/cfb/errors"
)

// headerInfo is everything read_header extracts from the 512-byte CFB
// header before the FAT/MiniFAT/directory chains are walked.
type headerInfo struct {
	version            Version
	firstDirSector     uint32
	firstMiniFATSector uint32
	firstDIFATSector   uint32
	numFATSectors      uint32
	numMiniFATSectors  uint32
	numDIFATSectors    uint32
}

// readHeader parses and validates the CFB header at the start of store,
// per MS-CFB 2.2 and spec §4.1/§6. Any mismatch against the fixed fields
// (magic, version, byte-order mark, sector shifts, mini-stream cutoff)
// fails with cfberr.ErrInvalidData naming the offending field.
func readHeader(store BackingStore) (headerInfo, error) {
	if err := seekAbsolute(store, 0); err != nil {
		return headerInfo{}, err
	}

	var magic [8]byte
	if _, err := io.ReadFull(store, magic[:]); err != nil {
		return headerInfo{}, cfberr.IO(err)
	}
	if !bytes.Equal(magic[:], magicNumber[:]) {
		return headerInfo{}, cfberr.ErrInvalidData.WithMessage(
			"wrong magic number")
	}

	if err := seekAbsolute(store, 24); err != nil {
		return headerInfo{}, err
	}
	if _, err := readU16(store); err != nil { // minor version, ignored
		return headerInfo{}, err
	}
	majorVersion, err := readU16(store)
	if err != nil {
		return headerInfo{}, err
	}
	version, err := versionFromNumber(majorVersion)
	if err != nil {
		return headerInfo{}, err
	}

	bom, err := readU16(store)
	if err != nil {
		return headerInfo{}, err
	}
	if bom != byteOrderMark {
		return headerInfo{}, cfberr.ErrInvalidData.WithMessage(
			"invalid byte order mark")
	}

	sectorShift, err := readU16(store)
	if err != nil {
		return headerInfo{}, err
	}
	if sectorShift != version.SectorShift() {
		return headerInfo{}, cfberr.ErrInvalidData.WithMessage(
			"incorrect sector shift for this CFB version")
	}

	miniShift, err := readU16(store)
	if err != nil {
		return headerInfo{}, err
	}
	if miniShift != miniSectorShift {
		return headerInfo{}, cfberr.ErrInvalidData.WithMessage(
			"incorrect mini sector shift")
	}

	if err := seekAbsolute(store, 44); err != nil {
		return headerInfo{}, err
	}
	numFATSectors, err := readU32(store)
	if err != nil {
		return headerInfo{}, err
	}
	firstDirSector, err := readU32(store)
	if err != nil {
		return headerInfo{}, err
	}
	if _, err := readU32(store); err != nil { // transaction signature, ignored
		return headerInfo{}, err
	}
	miniStreamCutoffField, err := readU32(store)
	if err != nil {
		return headerInfo{}, err
	}
	if miniStreamCutoffField != miniStreamCutoff {
		return headerInfo{}, cfberr.ErrInvalidData.WithMessage(
			"invalid mini stream cutoff value")
	}
	firstMiniFATSector, err := readU32(store)
	if err != nil {
		return headerInfo{}, err
	}
	numMiniFATSectors, err := readU32(store)
	if err != nil {
		return headerInfo{}, err
	}
	firstDIFATSector, err := readU32(store)
	if err != nil {
		return headerInfo{}, err
	}
	numDIFATSectors, err := readU32(store)
	if err != nil {
		return headerInfo{}, err
	}

	return headerInfo{
		version:            version,
		firstDirSector:     firstDirSector,
		firstMiniFATSector: firstMiniFATSector,
		firstDIFATSector:   firstDIFATSector,
		numFATSectors:      numFATSectors,
		numMiniFATSectors:  numMiniFATSectors,
		numDIFATSectors:    numDIFATSectors,
	}, nil
}

// writeInitialHeader emits the header for a brand-new, empty compound
// file: one FAT sector, one directory sector, no MiniFAT, no DIFAT
// overflow, per spec §6's "Empty file produced by create".
func writeInitialHeader(store BackingStore, version Version) error {
	if err := seekAbsolute(store, 0); err != nil {
		return err
	}
	if _, err := store.Write(magicNumber[:]); err != nil {
		return cfberr.IO(err)
	}
	if err := writeZeros(store, 16); err != nil { // reserved
		return err
	}
	if err := writeU16(store, minorVersion); err != nil {
		return err
	}
	if err := writeU16(store, version.Number()); err != nil {
		return err
	}
	if err := writeU16(store, byteOrderMark); err != nil {
		return err
	}
	if err := writeU16(store, version.SectorShift()); err != nil {
		return err
	}
	if err := writeU16(store, miniSectorShift); err != nil {
		return err
	}
	if err := writeZeros(store, 6); err != nil { // reserved
		return err
	}
	if err := writeU32(store, 1); err != nil { // number of directory sectors
		return err
	}
	if err := writeU32(store, 1); err != nil { // number of FAT sectors
		return err
	}
	if err := writeU32(store, 1); err != nil { // first directory sector
		return err
	}
	if err := writeU32(store, 0); err != nil { // transaction signature, unused
		return err
	}
	if err := writeU32(store, miniStreamCutoff); err != nil {
		return err
	}
	if err := writeU32(store, endOfChain); err != nil { // first MiniFAT sector
		return err
	}
	if err := writeU32(store, 0); err != nil { // number of MiniFAT sectors
		return err
	}
	if err := writeU32(store, endOfChain); err != nil { // first DIFAT sector
		return err
	}
	if err := writeU32(store, 0); err != nil { // number of DIFAT sectors
		return err
	}
	// First 109 DIFAT entries: slot 0 is the lone FAT sector, the rest free.
	if err := writeU32(store, 0); err != nil {
		return err
	}
	for i := 1; i < numDIFATEntriesInHead; i++ {
		if err := writeU32(store, freeSector); err != nil {
			return err
		}
	}
	// Pad the header out to a full sector.
	sectorLen := version.SectorLen()
	if sectorLen > headerLen {
		if err := writeZeros(store, sectorLen-headerLen); err != nil {
			return err
		}
	}
	return nil
}
