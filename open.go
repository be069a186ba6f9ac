package cfb

import cfberr "github.com/dargueta/cfb/errors"

// Open reads an existing compound file from store and validates it before
// returning; if any check fails, no *File is returned. The checks cover
// the header fields, the DIFAT and FAT (in-range pointers, FAT sectors
// marked as such, no sector linked from two predecessors), the MiniFAT,
// the root entry (type, name and mini-stream length), and each storage's
// sibling tree (in-range indices, no cycles, strict name order). The
// start sector of empty streams and the tier each stream's data lives in
// are not checked.
func Open(store BackingStore) (*File, error) {
	head, err := readHeader(store)
	if err != nil {
		return nil, err
	}

	f := &File{
		store:                store,
		version:              head.version,
		minifatStartSector:   head.firstMiniFATSector,
		directoryStartSector: head.firstDirSector,
		fatIx:                newAllocator(),
		minifatIx:            newAllocator(),
	}
	sectorLen := f.version.SectorLen()
	entriesPerSector := sectorLen / 4

	// Read the 109 in-header DIFAT entries.
	if err := seekAbsolute(store, 76); err != nil {
		return nil, err
	}
	for i := 0; i < numDIFATEntriesInHead; i++ {
		next, err := readU32(store)
		if err != nil {
			return nil, err
		}
		if next == freeSector {
			break
		}
		if next > maxRegularSector {
			return nil, cfberr.ErrInvalidData.WithMessage("invalid sector index in DIFAT")
		}
		f.difat = append(f.difat, next)
	}

	// Follow the DIFAT-sector chain for any entries beyond the header's 109.
	difatSectorCount := uint32(0)
	currentDIFATSector := head.firstDIFATSector
	for currentDIFATSector != endOfChain {
		difatSectorCount++
		if err := f.seekToSector(currentDIFATSector); err != nil {
			return nil, err
		}
		for i := 0; i < entriesPerSector-1; i++ {
			next, err := readU32(store)
			if err != nil {
				return nil, err
			}
			if next != freeSector && next > maxRegularSector {
				return nil, cfberr.ErrInvalidData.WithMessage("invalid sector index in DIFAT")
			}
			f.difat = append(f.difat, next)
		}
		next, err := readU32(store)
		if err != nil {
			return nil, err
		}
		currentDIFATSector = next
	}
	if head.numDIFATSectors != difatSectorCount {
		return nil, cfberr.ErrInvalidData.WithMessage("incorrect DIFAT chain length")
	}
	for len(f.difat) > 0 && f.difat[len(f.difat)-1] == freeSector {
		f.difat = f.difat[:len(f.difat)-1]
	}
	if head.numFATSectors != uint32(len(f.difat)) {
		return nil, cfberr.ErrInvalidData.WithMessage("incorrect number of FAT sectors")
	}

	// Read the FAT itself, one sector at a time, following the DIFAT.
	for _, fatSec := range f.difat {
		if err := f.seekToSector(fatSec); err != nil {
			return nil, err
		}
		for i := 0; i < entriesPerSector; i++ {
			v, err := readU32(store)
			if err != nil {
				return nil, err
			}
			f.fat = append(f.fat, v)
		}
	}
	for len(f.fat) > 0 && f.fat[len(f.fat)-1] == freeSector {
		f.fat = f.fat[:len(f.fat)-1]
	}
	if err := f.validateDIFATAndFAT(); err != nil {
		return nil, err
	}
	f.fatIx.grow(len(f.fat), func(i int) bool { return f.fat[i] != freeSector })

	// Read the MiniFAT, following its chain through the (now validated) FAT.
	minifatSectorCount := uint32(0)
	currentMiniFATSector := head.firstMiniFATSector
	for currentMiniFATSector != endOfChain {
		minifatSectorCount++
		if err := f.seekToSector(currentMiniFATSector); err != nil {
			return nil, err
		}
		for i := 0; i < entriesPerSector; i++ {
			v, err := readU32(store)
			if err != nil {
				return nil, err
			}
			f.minifat = append(f.minifat, v)
		}
		if currentMiniFATSector >= uint32(len(f.fat)) {
			return nil, cfberr.ErrInvalidData.WithMessage("MiniFAT chain sector out of bounds")
		}
		currentMiniFATSector = f.fat[currentMiniFATSector]
	}
	if head.numMiniFATSectors != minifatSectorCount {
		return nil, cfberr.ErrInvalidData.WithMessage("incorrect MiniFAT chain length")
	}
	for len(f.minifat) > 0 && f.minifat[len(f.minifat)-1] == freeSector {
		f.minifat = f.minifat[:len(f.minifat)-1]
	}
	if err := f.validateMiniFAT(); err != nil {
		return nil, err
	}
	f.minifatIx.grow(len(f.minifat), func(i int) bool { return f.minifat[i] != freeSector })

	// Read the directory.
	currentDirSector := head.firstDirSector
	for currentDirSector != endOfChain {
		if err := f.seekToSector(currentDirSector); err != nil {
			return nil, err
		}
		for i := 0; i < f.version.dirEntriesPerSector(); i++ {
			entry, err := readDirEntry(store, f.version)
			if err != nil {
				return nil, err
			}
			f.directory = append(f.directory, entry)
		}
		if currentDirSector >= uint32(len(f.fat)) {
			return nil, cfberr.ErrInvalidData.WithMessage("directory chain sector out of bounds")
		}
		currentDirSector = f.fat[currentDirSector]
	}
	if err := f.validateDirectory(); err != nil {
		return nil, err
	}

	return f, nil
}
